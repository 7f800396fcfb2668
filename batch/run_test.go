package batch_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inspire-group/tempest/batch"
	"github.com/inspire-group/tempest/topology"
)

func TestRunResilience_ComputesEveryClientInOrder(t *testing.T) {
	g, _, err := topology.Load(strings.NewReader("R|A|-1\nR|B|-1\nA|X|-1\nB|X|-1\n"))
	require.NoError(t, err)

	results, err := batch.RunResilience(context.Background(), g, []string{"R", "A"}, []string{"X"}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "R", results[0].ClientAS)
	require.Equal(t, "A", results[1].ClientAS)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)
}

func TestRunResilience_UnknownClientIsPerClientError(t *testing.T) {
	g, _, err := topology.Load(strings.NewReader("A|B|-1\n"))
	require.NoError(t, err)

	results, err := batch.RunResilience(context.Background(), g, []string{"Z"}, []string{"B"}, 1)
	require.NoError(t, err)
	require.Error(t, results[0].Err)
}
