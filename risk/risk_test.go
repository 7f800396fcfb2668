package risk_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inspire-group/tempest/risk"
)

func TestAggregate_HijackSetAccumulatesAcrossClients(t *testing.T) {
	cfg := risk.Config{
		Bandwidth:      map[string]float64{"G1": 1, "G2": 1},
		Alpha:          0.5,
		Cap:            2,
		NumHijackTotal: 10,
	}

	clients := []risk.ClientInput{
		{
			ClientID:   "c1",
			Resilience: map[string]float64{"G1": 0.5, "G2": 0.5},
			Hijackers:  map[string][]string{"G1": {"H1"}},
		},
		{
			ClientID:   "c2",
			Resilience: map[string]float64{"G1": 0.5, "G2": 0.5},
			Hijackers:  map[string][]string{"G1": {"H1", "H2"}},
		},
	}

	scores, err := risk.Aggregate(clients, cfg)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	// c2 sees a strictly larger accumulated hijacker set for G1 (H1,H2
	// vs just H1), so its score cannot be smaller than c1's.
	require.GreaterOrEqual(t, scores[1], scores[0])
}

func TestAggregate_GuardMismatchIsError(t *testing.T) {
	cfg := risk.Config{
		Bandwidth: map[string]float64{"G1": 1, "G2": 1},
		Alpha:     0.5,
		Cap:       2,
	}
	clients := []risk.ClientInput{
		{ClientID: "c1", Resilience: map[string]float64{"G1": 0.5}},
	}

	_, err := risk.Aggregate(clients, cfg)
	require.ErrorIs(t, err, risk.ErrGuardMismatch)
}

func TestAggregate_ZeroHijackersYieldsZeroScore(t *testing.T) {
	cfg := risk.Config{
		Bandwidth:      map[string]float64{"G1": 1, "G2": 1},
		Alpha:          0.5,
		Cap:            2,
		NumHijackTotal: 10,
	}
	clients := []risk.ClientInput{
		{ClientID: "c1", Resilience: map[string]float64{"G1": 0.5, "G2": 0.5}},
	}

	scores, err := risk.Aggregate(clients, cfg)
	require.NoError(t, err)
	require.Equal(t, 0.0, scores[0])
}
