package topology_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inspire-group/tempest/topology"
)

func TestLoad_TriangleS1(t *testing.T) {
	r := strings.NewReader("A|B|-1\nB|C|-1\nA|C|0\n")
	g, stats, err := topology.Load(r)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Edges)
	require.Equal(t, 3, g.TotalAS())

	_, ok := g.Customers("A")["B"]
	require.True(t, ok, "A should have B as customer")
	_, ok = g.Providers("B")["A"]
	require.True(t, ok, "B should have A as provider")
	_, ok = g.Peers("A")["C"]
	require.True(t, ok, "A and C should be mirrored peers")
	_, ok = g.Peers("C")["A"]
	require.True(t, ok, "A and C should be mirrored peers")
}

func TestLoad_IgnoresCommentsAndBlankLines(t *testing.T) {
	r := strings.NewReader("# comment\n\nA|B|-1\n# trailing\n")
	g, stats, err := topology.Load(r)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Edges)
	require.True(t, g.HasAS("A"))
}

func TestLoad_ToleratesExtraTrailingFields(t *testing.T) {
	r := strings.NewReader("A|B|-1|some_source\n")
	_, stats, err := topology.Load(r)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Edges)
}

func TestLoad_DuplicateEdgeCounted(t *testing.T) {
	r := strings.NewReader("A|B|-1\nA|B|-1\n")
	g, stats, err := topology.Load(r)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Duplicates)
	require.Len(t, g.Customers("A"), 1)
}

func TestLoad_BadRelationshipIsFatal(t *testing.T) {
	r := strings.NewReader("A|B|7\n")
	_, _, err := topology.Load(r)
	require.Error(t, err)
	require.True(t, errors.Is(err, topology.ErrTopologyParse))
}

func TestLoad_NonIntegerRelationshipIsFatal(t *testing.T) {
	r := strings.NewReader("A|B|oops\n")
	_, _, err := topology.Load(r)
	require.True(t, errors.Is(err, topology.ErrTopologyParse))
}

func TestLoad_TooFewFieldsIsFatal(t *testing.T) {
	r := strings.NewReader("A|B\n")
	_, _, err := topology.Load(r)
	require.True(t, errors.Is(err, topology.ErrTopologyParse))
}

func TestLoad_SelfLoopIgnored(t *testing.T) {
	r := strings.NewReader("A|A|-1\nA|B|-1\n")
	g, _, err := topology.Load(r)
	require.NoError(t, err)
	_, ok := g.Customers("A")["A"]
	require.False(t, ok, "self-loop must not be stored")
	require.Equal(t, 2, g.TotalAS())
}
