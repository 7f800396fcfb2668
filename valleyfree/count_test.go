package valleyfree_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inspire-group/tempest/topology"
	"github.com/inspire-group/tempest/valleyfree"
)

func mustLoad(t *testing.T, rel string) *topology.Graph {
	t.Helper()
	g, _, err := topology.Load(strings.NewReader(rel))
	require.NoError(t, err)

	return g
}

// S1 — triangle: A|B|-1, B|C|-1, A|C|0, root A.
//
// The peer edge A-C never improves on the downhill chain A->B->C, so the
// peer arrival at C (hop_count = TOTAL_AS) is discarded in favour of the
// two-hop downhill arrival. TOTAL_AS = 3.
func TestCountBFS_TriangleS1(t *testing.T) {
	g := mustLoad(t, "A|B|-1\nB|C|-1\nA|C|0\n")
	res, err := valleyfree.CountBFS(g, "A")
	require.NoError(t, err)
	require.Equal(t, 3, res.TotalAS)

	require.Equal(t, &valleyfree.Label{HopCount: 0, EqualPathCount: 1, UphillHops: 0}, res.Labels["A"])
	require.Equal(t, &valleyfree.Label{HopCount: 1, EqualPathCount: 1, UphillHops: 0}, res.Labels["B"])
	require.Equal(t, &valleyfree.Label{HopCount: 2, EqualPathCount: 1, UphillHops: 0}, res.Labels["C"])
}

// S2 — diamond: R|A|-1, R|B|-1, A|X|-1, B|X|-1, root R.
func TestCountBFS_DiamondS2(t *testing.T) {
	g := mustLoad(t, "R|A|-1\nR|B|-1\nA|X|-1\nB|X|-1\n")
	res, err := valleyfree.CountBFS(g, "R")
	require.NoError(t, err)
	require.Equal(t, &valleyfree.Label{HopCount: 2, EqualPathCount: 2, UphillHops: 0}, res.Labels["X"])
}

// S3 — uphill-then-peer: P|R|-1, P|Q|0, Q|G|-1, root R.
func TestCountBFS_UphillThenPeerS3(t *testing.T) {
	g := mustLoad(t, "P|R|-1\nP|Q|0\nQ|G|-1\n")
	res, err := valleyfree.CountBFS(g, "R")
	require.NoError(t, err)
	require.Equal(t, 4, res.TotalAS)

	require.Equal(t, 1, res.Labels["P"].UphillHops)
	require.Equal(t, 0, res.Labels["P"].HopCount)

	require.Equal(t, res.TotalAS+1, res.Labels["G"].HopCount)
	require.Equal(t, 1, res.Labels["G"].UphillHops)
}

// S4 — valley violation: A|B|-1, B|C|-1, C|D|-1, E|D|-1 (E is D's provider).
// From root A, E must never be reached: the downhill phase only ever
// walks Customers(), so it cannot climb from D to its provider E.
func TestCountBFS_ValleyViolationS4(t *testing.T) {
	g := mustLoad(t, "A|B|-1\nB|C|-1\nC|D|-1\nE|D|-1\n")
	res, err := valleyfree.CountBFS(g, "A")
	require.NoError(t, err)

	_, ok := res.Labels["E"]
	require.False(t, ok, "E must not be reached from downhill-only root A")
	require.Contains(t, res.Labels, "D")
}

func TestCountBFS_UnknownRoot(t *testing.T) {
	g := mustLoad(t, "A|B|-1\n")
	_, err := valleyfree.CountBFS(g, "Z")
	require.Error(t, err)
}

// Monotonicity property #2: equal_path_count only grows; hop_count and
// uphill_hops are fixed at first assignment.
func TestCountBFS_MonotoneLabels(t *testing.T) {
	g := mustLoad(t, "R|A|-1\nR|B|-1\nA|X|-1\nB|X|-1\nX|Y|-1\n")
	res, err := valleyfree.CountBFS(g, "R")
	require.NoError(t, err)

	require.Equal(t, 2, res.Labels["X"].HopCount)
	require.Equal(t, float64(2), res.Labels["X"].EqualPathCount)
	require.Equal(t, 3, res.Labels["Y"].HopCount)
	require.Equal(t, float64(2), res.Labels["Y"].EqualPathCount)
}
