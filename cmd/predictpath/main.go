// Command predictpath predicts forward and reverse valley-free AS
// paths between Tor clients and guards, per §4.3/§4.5/§6.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inspire-group/tempest/internal/cli"
	"github.com/inspire-group/tempest/internal/logging"
	"github.com/inspire-group/tempest/ioformat"
	"github.com/inspire-group/tempest/pathselect"
	"github.com/inspire-group/tempest/topology"
	"github.com/inspire-group/tempest/valleyfree"
)

func main() {
	root := &cobra.Command{
		Use:   "predictpath",
		Short: "Predict client-guard AS paths",
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

	graph, guards, clients, err := loadInputs(flags)
	if err != nil {
		return err
	}

	// Forward: guard is the destination, client the source — root the
	// path BFS at each guard and read off the client's entry.
	forward := make(map[string]map[string][]string, len(guards))
	for _, guard := range guards {
		res, err := valleyfree.PathBFS(graph, guard)
		if err != nil {
			logger.Warn("guard unreachable as path root", zap.String("guard_as", guard), zap.Error(err))
			continue
		}
		forward[guard] = resolvePaths(res, clients, flags.NoTieBreak, logger)
	}

	// Reverse: client is the destination, guard the source.
	reverse := make(map[string]map[string][]string, len(clients))
	for _, client := range clients {
		res, err := valleyfree.PathBFS(graph, client)
		if err != nil {
			logger.Warn("client unreachable as path root", zap.String("client_as", client), zap.Error(err))
			continue
		}
		reverse[client] = resolvePaths(res, guards, flags.NoTieBreak, logger)
	}

	out := make(map[string]map[string]ioformat.PathPair)
	for _, client := range clients {
		perGuard := make(map[string]ioformat.PathPair)
		complete := true
		for _, guard := range guards {
			fwd, fok := forward[guard][client]
			rev, rok := reverse[client][guard]
			if !fok || !rok {
				complete = false
				break
			}
			perGuard[guard] = ioformat.PathPair{Forward: fwd, Reverse: rev}
		}
		if !complete {
			logger.Warn("client dropped: incomplete paths", zap.String("client_as", client))
			continue
		}
		out[client] = perGuard
	}

	writer := os.Stdout
	if flags.ResilFile != "" {
		f, err := os.Create(flags.ResilFile)
		if err != nil {
			return fmt.Errorf("predictpath: creating output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	if err := ioformat.WritePaths(writer, out); err != nil {
		return fmt.Errorf("predictpath: writing output: %w", err)
	}

	return nil
}

func loadInputs(flags cli.Common) (*topology.Graph, []string, []string, error) {
	topoFile, err := os.Open(flags.TopologyFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("predictpath: opening topology file: %w", err)
	}
	defer topoFile.Close()

	graph, _, err := ioformat.LoadTopology(topoFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("predictpath: loading topology: %w", err)
	}

	guardFile, err := os.Open(flags.GuardFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("predictpath: opening guard file: %w", err)
	}
	defer guardFile.Close()

	guards, err := ioformat.LoadGuards(guardFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("predictpath: loading guards: %w", err)
	}

	clientFile, err := os.Open(flags.ClientFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("predictpath: opening client file: %w", err)
	}
	defer clientFile.Close()

	clientRecords, err := ioformat.LoadClients(clientFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("predictpath: loading clients: %w", err)
	}

	clients := make([]string, len(clientRecords))
	for i, rec := range clientRecords {
		clients[i] = rec.AS
	}

	return graph, guards, clients, nil
}

// resolvePaths materialises, for every target in targets, the path
// from target back to res.Root, reduced to one path via the
// deterministic tiebreak (§4.5) unless noTieBreak asks for whichever
// candidate Paths happens to return first.
func resolvePaths(res *valleyfree.PathResult, targets []string, noTieBreak bool, logger *zap.Logger) map[string][]string {
	out := make(map[string][]string, len(targets))

	for _, target := range targets {
		candidates, err := res.Paths(target)
		if err != nil || len(candidates) == 0 {
			continue
		}

		if noTieBreak {
			out[target] = candidates[0]
			continue
		}

		chosen, err := pathselect.Select(candidates)
		if err != nil {
			logger.Warn("path selection failed", zap.String("target_as", target), zap.Error(err))
			continue
		}
		out[target] = chosen
	}

	return out
}
