// Package resilience implements the Counter-RAPTOR on-path probability
// heuristic (§4.4): given one client's counting-form valley-free
// labels, score a set of guard ASes by how far down the client's
// "furthest to closest" AS ordering each guard sits.
package resilience

import (
	"errors"
	"sort"

	"github.com/inspire-group/tempest/valleyfree"
)

// ErrDegenerateTotal is returned when TOTAL_AS <= 2, making the final
// division by (TOTAL_AS - 2) meaningless.
var ErrDegenerateTotal = errors.New("resilience: total_as must exceed 2")

// Score computes the resilience score of every AS in guards, given
// res (the client's CountBFS result) with the client's own entry
// already removed from res.Labels by the caller. Guards absent from
// res.Labels (unreachable from the client under the valley-free model)
// score 0.
func Score(res *valleyfree.CountResult, guards []string) (map[string]float64, error) {
	if res.TotalAS <= 2 {
		return nil, ErrDegenerateTotal
	}

	out := make(map[string]float64, len(guards))
	for _, g := range guards {
		out[g] = 0
	}

	ordered := orderedASes(res.Labels)
	unreachable := float64(res.TotalAS - 1 - len(ordered))

	guardSet := make(map[string]struct{}, len(guards))
	for _, g := range guards {
		guardSet[g] = struct{}{}
	}

	type credit struct {
		as    string
		share float64
	}

	var (
		nodesPassed float64
		groupEqPath float64
		groupSize   int
		haveGroup   bool
		groupHop    int
		groupUp     int
		buffer      []credit
	)

	flush := func() {
		for _, c := range buffer {
			frac := 0.0
			if groupSize > 1 {
				frac = c.share / groupEqPath
			}
			out[c.as] += nodesPassed + unreachable + frac
		}
		nodesPassed += float64(groupSize)
	}

	for _, id := range ordered {
		label := res.Labels[id]

		if !haveGroup || label.HopCount != groupHop || label.UphillHops != groupUp {
			if haveGroup {
				flush()
			}
			buffer = nil
			groupEqPath = 0
			groupSize = 0
			groupHop = label.HopCount
			groupUp = label.UphillHops
			haveGroup = true
		}

		groupEqPath += label.EqualPathCount
		groupSize++

		if _, ok := guardSet[id]; ok {
			buffer = append(buffer, credit{as: id, share: label.EqualPathCount})
		}
	}
	if haveGroup {
		flush()
	}

	for id, score := range out {
		out[id] = score / float64(res.TotalAS-2)
	}

	return out, nil
}

// orderedASes returns labels' keys sorted descending by
// (uphill_hops, hop_count) — the ordering §4.4 sweeps in, from the
// node furthest from the client inward.
func orderedASes(labels map[string]*valleyfree.Label) []string {
	ids := make([]string, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		li, lj := labels[ids[i]], labels[ids[j]]
		if li.UphillHops != lj.UphillHops {
			return li.UphillHops > lj.UphillHops
		}
		if li.HopCount != lj.HopCount {
			return li.HopCount > lj.HopCount
		}

		return ids[i] < ids[j]
	})

	return ids
}
