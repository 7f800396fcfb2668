// Package cli holds the flag set shared by cmd/resilience,
// cmd/predictpath, and cmd/riskagg (§6, §0): cobra-bound flags with
// viper env-var overrides under the TEMPEST_ prefix.
package cli

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Common holds every flag value shared across the three binaries,
// after cobra parsing and viper's env-override resolution.
type Common struct {
	TopologyFile  string
	ClientFile    string
	GuardFile     string
	ResilFile     string
	HijackFile    string
	CountryASFile string
	SampleSize    float64
	NoTieBreak    bool
	Concurrency   int
	LogLevel      string
}

// RegisterCommon binds the shared flag set onto cmd and wires each
// one through viper with a TEMPEST_ prefixed environment override,
// per §0/§6. Call Resolve after cmd.Execute parses to read the final,
// env-aware values.
func RegisterCommon(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.String("topology_file", "data/20161001.as-rel2.txt", "CAIDA-style AS relationship file")
	flags.String("client_file", "data/top400client.txt", "client AS (or country code) list")
	flags.String("guard_as_file", "data/as_guard.txt", "guard AS list")
	flags.String("guard_file", "", "alias for --guard_as_file")
	flags.String("resil_file", "", "output file of cmd/resilience and cmd/predictpath (empty: stdout); resilience score input of cmd/riskagg")
	flags.String("hijack_file", "", "risk config JSON (bandwidth, alpha, cap, num_hijack_total, hijackers), for cmd/riskagg")
	flags.String("country-as-file", "", "country-to-AS JSON map, for country-coded client lists")
	flags.Float64("sample_size", 1.0, "redistribution cap k as a fraction of the guard set, in (0,1]")
	flags.Bool("notiebreak", false, "skip deterministic path tiebreak, keep an arbitrary candidate path")
	flags.Int("concurrency", runtime.GOMAXPROCS(0), "client batch worker count")
	flags.String("log-level", "info", "debug|info|warn|error")

	v := viper.New()
	v.SetEnvPrefix("TEMPEST")
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	cmd.PersistentFlags().AddFlagSet(flags)
	viperRegistry[cmd] = v
}

var viperRegistry = map[*cobra.Command]*viper.Viper{}

// Resolve reads the final flag values for cmd through viper, per §0's
// wiring: a flag given on the command line wins, and otherwise a
// matching TEMPEST_* environment variable replaces the flag's default.
func Resolve(cmd *cobra.Command) Common {
	v := viperRegistry[cmd]

	guardFile := v.GetString("guard_as_file")
	if alias := v.GetString("guard_file"); alias != "" {
		guardFile = alias
	}

	return Common{
		TopologyFile:  v.GetString("topology_file"),
		ClientFile:    v.GetString("client_file"),
		GuardFile:     guardFile,
		ResilFile:     v.GetString("resil_file"),
		HijackFile:    v.GetString("hijack_file"),
		CountryASFile: v.GetString("country-as-file"),
		SampleSize:    v.GetFloat64("sample_size"),
		NoTieBreak:    v.GetBool("notiebreak"),
		Concurrency:   v.GetInt("concurrency"),
		LogLevel:      v.GetString("log-level"),
	}
}
