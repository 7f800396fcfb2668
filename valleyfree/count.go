// Package valleyfree implements the two BFS engines at the core of the
// valley-free path inference model: CountBFS (§4.2), which labels every
// reachable AS with a (hop_count, equal_path_count, uphill_hops) tuple,
// and PathBFS (§4.3), which materialises the shortest valley-free path
// sequences themselves.
//
// Per §9's "process-wide mutable graph" note, all per-root state lives in
// a value returned to the caller — never a package-level variable — so a
// batch driver can run many roots concurrently, each owning its own
// labels/state, against one shared read-only topology.Graph.
package valleyfree

import (
	"fmt"

	"github.com/inspire-group/tempest/topology"
)

// Label is one AS's counting-form BFS label (§3).
type Label struct {
	HopCount       int
	EqualPathCount float64
	UphillHops     int
}

// CountResult is the labelled graph produced by CountBFS for one root.
type CountResult struct {
	Root    string
	TotalAS int
	Labels  map[string]*Label
}

// CountBFS computes the counting-form valley-free labels reachable from
// root, per §4.2. The algorithm is phased per uphill level: having
// discovered all ASes at uphill depth d, it fully fans them out downhill
// and through (at most) one peer hop before advancing to depth d+1 — this
// ordering is what lets a single "never re-label, only accumulate on an
// exact hop_count match" rule produce correct equal_path_count sums.
func CountBFS(g *topology.Graph, root string) (*CountResult, error) {
	if !g.HasAS(root) {
		return nil, fmt.Errorf("valleyfree: %w: %s", topology.ErrUnknownAS, root)
	}

	totalAS := g.TotalAS()
	labels := map[string]*Label{
		root: {HopCount: 0, EqualPathCount: 1, UphillHops: 0},
	}

	// Level 0: the root itself fans out downhill and peers before any
	// uphill exploration begins, mirroring the reference implementation's
	// initial bfs_pc/bfs_pp calls ahead of its uphill loop.
	expandDownhill(g, labels, []string{root})
	expandPeer(g, labels, []string{root}, totalAS)

	queue := []string{root}
	var pendingLevel []string
	curLevel := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		val := labels[current]

		if val.UphillHops > curLevel {
			expandDownhill(g, labels, pendingLevel)
			expandPeer(g, labels, pendingLevel, totalAS)
			pendingLevel = nil
			curLevel = val.UphillHops
		}

		for provider := range g.Providers(current) {
			if existing, ok := labels[provider]; !ok {
				labels[provider] = &Label{
					HopCount:       val.HopCount,
					EqualPathCount: val.EqualPathCount,
					UphillHops:     val.UphillHops + 1,
				}
				queue = append(queue, provider)
				pendingLevel = append(pendingLevel, provider)
			} else if existing.UphillHops == val.UphillHops+1 {
				existing.EqualPathCount += val.EqualPathCount
			}
		}
	}

	// pendingLevel is always nil here: BFS level-order guarantees every
	// node added to it is itself popped (triggering its own flush) before
	// the queue drains, including the deepest uphill level reached.

	return &CountResult{Root: root, TotalAS: totalAS, Labels: labels}, nil
}

// expandDownhill runs a plain P2C BFS from roots, labelling each newly
// reached customer with hop_count+1 relative to its parent and
// accumulating equal_path_count when a customer is reached again at the
// identical hop_count. Caller's labels for roots must already exist.
func expandDownhill(g *topology.Graph, labels map[string]*Label, roots []string) {
	queue := append([]string(nil), roots...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		val := labels[current]

		for customer := range g.Customers(current) {
			if existing, ok := labels[customer]; !ok {
				labels[customer] = &Label{
					HopCount:       val.HopCount + 1,
					EqualPathCount: val.EqualPathCount,
					UphillHops:     val.UphillHops,
				}
				queue = append(queue, customer)
			} else if existing.HopCount == val.HopCount+1 {
				existing.EqualPathCount += val.EqualPathCount
			}
		}
	}
}

// expandPeer traverses at most one peer edge from each node in roots,
// initialising downhill roots at hop_count = parent.hop_count + totalAS,
// then cascades a downhill BFS from those peer-reached nodes. roots must
// all share the same (hop_count, uphill_hops) key — true whenever called
// with one completed uphill level — so the equal-hop_count accumulation
// check behaves correctly regardless of which root is processed first.
func expandPeer(g *topology.Graph, labels map[string]*Label, roots []string, totalAS int) {
	var queue []string
	for _, rt := range roots {
		val := labels[rt]
		peerHop := val.HopCount + totalAS

		for peer := range g.Peers(rt) {
			if existing, ok := labels[peer]; !ok {
				labels[peer] = &Label{
					HopCount:       peerHop,
					EqualPathCount: val.EqualPathCount,
					UphillHops:     val.UphillHops,
				}
				queue = append(queue, peer)
			} else if existing.HopCount == peerHop {
				existing.EqualPathCount += val.EqualPathCount
			}
		}
	}

	expandDownhill(g, labels, queue)
}
