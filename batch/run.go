// Package batch fans the per-client resilience pipeline out across a
// bounded worker pool (§4.9, §5): every worker builds its own
// valleyfree label map and resilience accumulator against one shared
// read-only topology.Graph, never sharing mutable state across
// goroutines.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/inspire-group/tempest/resilience"
	"github.com/inspire-group/tempest/topology"
	"github.com/inspire-group/tempest/valleyfree"
)

// ClientResult is one client's resilience pipeline outcome. Err is
// set for a per-client failure (e.g. an unknown AS) and never aborts
// the rest of the batch — callers decide whether to log and skip or
// treat it as fatal (§7).
type ClientResult struct {
	ClientAS string
	Scores   map[string]float64
	Err      error
}

// RunResilience computes resilience scores for every client in
// clients against guards, fanning out across concurrency workers.
// Results are returned in the same order as clients regardless of
// which worker finished first; concurrency <= 0 is treated as 1.
func RunResilience(ctx context.Context, g *topology.Graph, clients, guards []string, concurrency int) ([]ClientResult, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]ClientResult, len(clients))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, client := range clients {
		i, client := i, client
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = computeOne(g, client, guards)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("batch: resilience fan-out: %w", err)
	}

	return results, nil
}

func computeOne(g *topology.Graph, client string, guards []string) ClientResult {
	if !g.HasAS(client) {
		return ClientResult{ClientAS: client, Err: fmt.Errorf("batch: %w: %s", topology.ErrUnknownAS, client)}
	}

	res, err := valleyfree.CountBFS(g, client)
	if err != nil {
		return ClientResult{ClientAS: client, Err: err}
	}
	delete(res.Labels, client)

	scores, err := resilience.Score(res, guards)
	if err != nil {
		return ClientResult{ClientAS: client, Err: err}
	}

	return ClientResult{ClientAS: client, Scores: scores}
}
