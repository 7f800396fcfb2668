// Package risk implements the risk aggregator (C7): mixes each
// client's resilience scores with guard bandwidth via a factor alpha,
// redistributes the result into draw probabilities (§4.6), and folds
// in a hijacker-AS set that accumulates monotonically across an
// ordered client list to model an attacker that learns across
// vantage points (§4.7).
package risk

import (
	"errors"
	"sort"

	"github.com/inspire-group/tempest/redistribute"
)

// ErrGuardMismatch is returned when a client's resilience map does not
// cover the same guard set as Config.Bandwidth.
var ErrGuardMismatch = errors.New("risk: resilience and bandwidth guard sets differ")

// Config holds the parameters shared across one aggregation run.
type Config struct {
	// Bandwidth is the per-guard bandwidth weight b(g).
	Bandwidth map[string]float64
	// Alpha mixes resilience against bandwidth: alpha*r + (1-alpha)*b.
	Alpha float64
	// Cap is the k-sample parameter fed to redistribute.Redistribute.
	Cap int
	// NumHijackTotal is the fixed configuration scalar guard hijack
	// counts are divided by.
	NumHijackTotal float64
}

// ClientInput is one client's contribution to the ordered aggregation.
type ClientInput struct {
	ClientID string
	// Resilience is this client's C4 output: r(g) per guard.
	Resilience map[string]float64
	// Hijackers lists, per guard, the AS identifiers newly observed as
	// capable of hijacking this client's path through that guard.
	Hijackers map[string][]string
}

// Aggregate computes one risk score per client, in the order given.
// Each client's hijacker observations are folded into a running,
// never-shrinking per-guard hijacker set before that client's own
// score is computed, so a client benefits from (and contributes to)
// everything learned from clients earlier in the list.
func Aggregate(clients []ClientInput, cfg Config) ([]float64, error) {
	scores := make([]float64, len(clients))
	accumulated := make(map[string]map[string]struct{}, len(cfg.Bandwidth))

	for i, c := range clients {
		for guard, hijackers := range c.Hijackers {
			set, ok := accumulated[guard]
			if !ok {
				set = make(map[string]struct{})
				accumulated[guard] = set
			}
			for _, h := range hijackers {
				set[h] = struct{}{}
			}
		}

		chosen, err := chosenProbabilities(c.Resilience, cfg)
		if err != nil {
			return nil, err
		}

		var score float64
		for guard, prob := range chosen {
			score += prob * float64(len(accumulated[guard]))
		}
		if cfg.NumHijackTotal != 0 {
			score /= cfg.NumHijackTotal
		}

		scores[i] = score
	}

	return scores, nil
}

// chosenProbabilities mixes resilience with bandwidth per guard, then
// redistributes the mixed weights into draw probabilities (§4.6).
func chosenProbabilities(resilienceScores map[string]float64, cfg Config) (map[string]float64, error) {
	if len(resilienceScores) != len(cfg.Bandwidth) {
		return nil, ErrGuardMismatch
	}

	guards := make([]string, 0, len(cfg.Bandwidth))
	for g := range cfg.Bandwidth {
		guards = append(guards, g)
	}
	sort.Strings(guards)

	weights := make([]float64, len(guards))
	for i, g := range guards {
		r, ok := resilienceScores[g]
		if !ok {
			return nil, ErrGuardMismatch
		}
		weights[i] = cfg.Alpha*r + (1-cfg.Alpha)*cfg.Bandwidth[g]
	}

	probs, err := redistribute.Redistribute(weights, cfg.Cap)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(guards))
	for i, g := range guards {
		out[g] = probs[i]
	}

	return out, nil
}
