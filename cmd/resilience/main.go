// Command resilience computes Counter-RAPTOR resilience scores for a
// Tor client set against a guard set, per §4.4/§6.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inspire-group/tempest/batch"
	"github.com/inspire-group/tempest/internal/cli"
	"github.com/inspire-group/tempest/internal/logging"
	"github.com/inspire-group/tempest/ioformat"
)

func main() {
	root := &cobra.Command{
		Use:   "resilience",
		Short: "Compute client-to-guard resilience scores",
		RunE:  run,
	}
	cli.RegisterCommon(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	flags := cli.Resolve(cmd)

	logger, err := logging.New(flags.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	topoFile, err := os.Open(flags.TopologyFile)
	if err != nil {
		return fmt.Errorf("resilience: opening topology file: %w", err)
	}
	defer topoFile.Close()

	graph, stats, err := ioformat.LoadTopology(topoFile)
	if err != nil {
		return fmt.Errorf("resilience: loading topology: %w", err)
	}
	logger.Info("topology loaded", zap.Int("as_count", graph.TotalAS()), zap.Int("edges", stats.Edges))

	clientFile, err := os.Open(flags.ClientFile)
	if err != nil {
		return fmt.Errorf("resilience: opening client file: %w", err)
	}
	defer clientFile.Close()

	clientRecords, err := ioformat.LoadClients(clientFile)
	if err != nil {
		return fmt.Errorf("resilience: loading clients: %w", err)
	}

	guardFile, err := os.Open(flags.GuardFile)
	if err != nil {
		return fmt.Errorf("resilience: opening guard file: %w", err)
	}
	defer guardFile.Close()

	guards, err := ioformat.LoadGuards(guardFile)
	if err != nil {
		return fmt.Errorf("resilience: loading guards: %w", err)
	}

	clients := make([]string, len(clientRecords))
	for i, rec := range clientRecords {
		clients[i] = rec.AS
	}

	if len(clients) == 0 {
		return fmt.Errorf("resilience: no clients to process")
	}

	results, err := batch.RunResilience(context.Background(), graph, clients, guards, flags.Concurrency)
	if err != nil {
		return fmt.Errorf("resilience: batch run: %w", err)
	}

	out := make(map[string]map[string]float64, len(results))
	skipped := 0
	for _, r := range results {
		if r.Err != nil {
			logger.Warn("client skipped", zap.String("client_as", r.ClientAS), zap.Error(r.Err))
			skipped++
			continue
		}
		out[r.ClientAS] = r.Scores
	}
	if skipped == len(results) {
		return fmt.Errorf("resilience: every client failed to produce a score")
	}

	writer := os.Stdout
	if flags.ResilFile != "" {
		f, err := os.Create(flags.ResilFile)
		if err != nil {
			return fmt.Errorf("resilience: creating output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	if err := ioformat.WriteResilience(writer, out); err != nil {
		return fmt.Errorf("resilience: writing output: %w", err)
	}

	return nil
}
