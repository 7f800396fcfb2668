// Command riskagg aggregates per-client risk from resilience scores,
// guard bandwidth, and an accumulating hijacker-AS set, per §4.6/§4.7.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inspire-group/tempest/internal/cli"
	"github.com/inspire-group/tempest/internal/logging"
	"github.com/inspire-group/tempest/ioformat"
	"github.com/inspire-group/tempest/risk"
)

func main() {
	root := &cobra.Command{
		Use:   "riskagg",
		Short: "Aggregate client-to-guard risk scores",
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

	resilFile, err := os.Open(flags.ResilFile)
	if err != nil {
		return fmt.Errorf("riskagg: opening resilience file: %w", err)
	}
	defer resilFile.Close()

	resilScores, err := ioformat.LoadResilienceScores(resilFile)
	if err != nil {
		return fmt.Errorf("riskagg: loading resilience scores: %w", err)
	}

	hijackFile, err := os.Open(flags.HijackFile)
	if err != nil {
		return fmt.Errorf("riskagg: opening hijack/config file: %w", err)
	}
	defer hijackFile.Close()

	cfg, err := ioformat.LoadRiskConfig(hijackFile)
	if err != nil {
		return fmt.Errorf("riskagg: loading risk config: %w", err)
	}

	clientFile, err := os.Open(flags.ClientFile)
	if err != nil {
		return fmt.Errorf("riskagg: opening client file: %w", err)
	}
	defer clientFile.Close()

	clientRecords, err := ioformat.LoadClients(clientFile)
	if err != nil {
		return fmt.Errorf("riskagg: loading clients: %w", err)
	}

	clientASes := make([]string, len(clientRecords))
	for i, rec := range clientRecords {
		clientASes[i] = rec.AS
	}

	// §4.8: a country-coded client list is translated to ASes before
	// anything else touches it, so the rest of the pipeline only ever
	// sees AS identifiers.
	if flags.CountryASFile != "" {
		countryFile, err := os.Open(flags.CountryASFile)
		if err != nil {
			return fmt.Errorf("riskagg: opening country map file: %w", err)
		}
		defer countryFile.Close()

		countryMap, err := ioformat.LoadCountryMap(countryFile)
		if err != nil {
			return fmt.Errorf("riskagg: loading country map: %w", err)
		}

		clientASes, err = ioformat.ExpandCountries(clientASes, countryMap)
		if err != nil {
			return fmt.Errorf("riskagg: expanding country codes: %w", err)
		}
	}

	capVal := cfg.Cap
	if capVal <= 0 {
		capVal = int(math.Round(flags.SampleSize * float64(len(cfg.Bandwidth))))
		if capVal < 1 {
			capVal = 1
		}
	}

	// §7 scopes a missing or mismatched resilience entry as fatal for
	// that client only, not for the batch — skip and log rather than
	// aborting every other client's score.
	var (
		clientOrder []string
		inputs      []risk.ClientInput
	)
	for _, as := range clientASes {
		res, ok := resilScores[as]
		if !ok {
			logger.Warn("client skipped: no resilience scores", zap.String("client_as", as))
			continue
		}
		if len(res) != len(cfg.Bandwidth) {
			logger.Warn("client skipped: resilience guard set does not match bandwidth guard set", zap.String("client_as", as))
			continue
		}

		clientOrder = append(clientOrder, as)
		inputs = append(inputs, risk.ClientInput{
			ClientID:   as,
			Resilience: res,
			Hijackers:  cfg.Hijackers[as],
		})
	}
	if len(inputs) == 0 {
		return fmt.Errorf("riskagg: no clients with usable resilience scores")
	}

	scores, err := risk.Aggregate(inputs, risk.Config{
		Bandwidth:      cfg.Bandwidth,
		Alpha:          cfg.Alpha,
		Cap:            capVal,
		NumHijackTotal: cfg.NumHijackTotal,
	})
	if err != nil {
		return fmt.Errorf("riskagg: aggregating risk: %w", err)
	}

	scoreByClient := make(map[string]float64, len(clientOrder))
	for i, client := range clientOrder {
		scoreByClient[client] = scores[i]
	}

	if err := ioformat.WriteRisk(os.Stdout, clientOrder, scoreByClient); err != nil {
		return fmt.Errorf("riskagg: writing output: %w", err)
	}

	return nil
}
