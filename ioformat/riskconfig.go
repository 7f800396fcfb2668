package ioformat

import (
	"encoding/json"
	"fmt"
	"io"
)

// RiskConfig is the JSON shape read from --hijack_file by cmd/riskagg:
// the per-guard bandwidth weights, mixing factor, redistribution cap,
// and fixed hijack-total scalar (§4.7), plus the per-client-per-guard
// hijacker observations those parameters get combined with. §6 leaves
// the risk aggregator's non-resilience inputs unspecified beyond "a
// fixed configuration scalar"; this shape is this implementation's
// resolution of that silence (see DESIGN.md).
type RiskConfig struct {
	Bandwidth      map[string]float64            `json:"bandwidth"`
	Alpha          float64                       `json:"alpha"`
	Cap            int                            `json:"cap"`
	NumHijackTotal float64                        `json:"num_hijack_total"`
	Hijackers      map[string]map[string][]string `json:"hijackers"`
}

// LoadRiskConfig decodes a RiskConfig from r.
func LoadRiskConfig(r io.Reader) (RiskConfig, error) {
	var cfg RiskConfig
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return RiskConfig{}, fmt.Errorf("ioformat: decoding risk config: %w", err)
	}

	return cfg, nil
}
