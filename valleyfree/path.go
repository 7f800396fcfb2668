package valleyfree

import (
	"fmt"

	"github.com/inspire-group/tempest/topology"
)

// Kind records which phase first assigned an AS its path label (§4.3).
// Once a node is labelled by one phase, only that same phase may later
// extend it with an additional equal-length path or replace it with a
// strictly shorter one — a node reached uphill is never touched by the
// peer or downhill phases that run afterwards, even if they would have
// found a shorter route. This asymmetry (the uphill phase, uniquely,
// applies no such gate at all) is preserved as-is from the reference
// algorithm; see §9.
type Kind int

const (
	KindUphill Kind = iota
	KindPeer
	KindDownhill
)

// PathLabel is one AS's path-form BFS label: the length (in AS hops,
// root included) of every path recorded for it, and the set of
// immediate next-hops toward root that realise that length. Parents is
// a DAG edge list, not a materialised path — Paths expands it lazily.
type PathLabel struct {
	Kind    Kind
	Length  int
	Parents []string
}

// PathResult is the labelled path DAG produced by PathBFS for one root.
type PathResult struct {
	Root   string
	Labels map[string]*PathLabel
}

// PathBFS computes the valley-free shortest-path DAG reachable from
// root, per §4.3. Unlike CountBFS, the three phases run to completion
// in strict sequence rather than interleaved level-by-level: a full
// uphill BFS first, then a single peer hop from everything the uphill
// phase reached, then a full downhill BFS seeded from everything the
// uphill and peer phases reached between them. This sequencing (and
// the per-phase "only extend my own kind" gate above) mirrors the
// reference implementation exactly.
func PathBFS(g *topology.Graph, root string) (*PathResult, error) {
	if !g.HasAS(root) {
		return nil, fmt.Errorf("valleyfree: %w: %s", topology.ErrUnknownAS, root)
	}

	labels := map[string]*PathLabel{
		root: {Kind: KindUphill, Length: 1},
	}

	runUphill(g, labels, root)

	afterUphill := nodeList(labels)
	runPeer(g, labels, afterUphill)

	afterPeer := nodeList(labels)
	runDownhill(g, labels, afterPeer)

	return &PathResult{Root: root, Labels: labels}, nil
}

func nodeList(labels map[string]*PathLabel) []string {
	out := make([]string, 0, len(labels))
	for id := range labels {
		out = append(out, id)
	}

	return out
}

// relax applies one BFS hop from `from` to `to`, recording `to` at
// kind newKind if it is unseen. If `to` already has a label, gate
// decides whether this arrival may touch it at all; a false gate
// silently discards the arrival regardless of length. A matching
// length accumulates an extra parent; a strictly shorter length
// replaces the label outright (and its kind, for phases where that can
// differ from newKind — it never does here, but mirrors the source's
// unconditional reassignment); a longer length is discarded.
func relax(labels map[string]*PathLabel, from, to string, newKind Kind, gate func(Kind) bool) (created bool) {
	curLen := labels[from].Length

	existing, ok := labels[to]
	if !ok {
		labels[to] = &PathLabel{Kind: newKind, Length: curLen + 1, Parents: []string{from}}

		return true
	}

	if !gate(existing.Kind) {
		return false
	}

	switch {
	case existing.Length == curLen+1:
		existing.Parents = append(existing.Parents, from)
	case existing.Length > curLen+1:
		existing.Kind = newKind
		existing.Length = curLen + 1
		existing.Parents = []string{from}
	}

	return false
}

func alwaysGate(Kind) bool { return true }
func peerGate(k Kind) bool { return k == KindPeer }
func downhillGate(k Kind) bool { return k == KindDownhill }

// runUphill performs a full multi-level BFS over Providers from root,
// with no gate on existing labels (faithful to the reference's bfs_cp,
// which checks only path length, never arrival kind, when merging).
func runUphill(g *topology.Graph, labels map[string]*PathLabel, root string) {
	queue := []string{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for provider := range g.Providers(current) {
			if relax(labels, current, provider, KindUphill, alwaysGate) {
				queue = append(queue, provider)
			}
		}
	}
}

// runPeer applies a single peer hop from every node in seeds. Valley
// freedom permits at most one peer edge per path, so this never
// cascades into a further peer hop the way runUphill/runDownhill do.
func runPeer(g *topology.Graph, labels map[string]*PathLabel, seeds []string) {
	for _, current := range seeds {
		for peer := range g.Peers(current) {
			relax(labels, current, peer, KindPeer, peerGate)
		}
	}
}

// runDownhill performs a full multi-level BFS over Customers seeded
// from seeds, gated to only extend nodes the downhill phase itself
// already owns.
func runDownhill(g *topology.Graph, labels map[string]*PathLabel, seeds []string) {
	queue := append([]string(nil), seeds...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for customer := range g.Customers(current) {
			if relax(labels, current, customer, KindDownhill, downhillGate) {
				queue = append(queue, customer)
			}
		}
	}
}

// Paths materialises every shortest valley-free path from root to
// asID, each path an ordered AS slice starting at asID and ending at
// root. Materialisation is deferred to this call (§9) rather than
// carried eagerly during the BFS, since the DAG can encode an amount
// of path fan-out exponential in its own node count.
func (r *PathResult) Paths(asID string) ([][]string, error) {
	if _, ok := r.Labels[asID]; !ok {
		return nil, fmt.Errorf("valleyfree: %w: %s", topology.ErrUnknownAS, asID)
	}

	memo := make(map[string][][]string)

	return r.expand(asID, memo), nil
}

func (r *PathResult) expand(asID string, memo map[string][][]string) [][]string {
	if asID == r.Root {
		return [][]string{{r.Root}}
	}
	if cached, ok := memo[asID]; ok {
		return cached
	}

	label := r.Labels[asID]
	var out [][]string
	for _, parent := range label.Parents {
		for _, sub := range r.expand(parent, memo) {
			path := make([]string, 0, len(sub)+1)
			path = append(path, asID)
			path = append(path, sub...)
			out = append(out, path)
		}
	}

	memo[asID] = out

	return out
}

// CheckLengthInvariant reports an error naming the first AS whose
// materialised paths are not all the same length — a structural bug
// if ever seen, since relax only ever accumulates parents at the
// label's own Length. Mirrors the sanity-check loops the reference
// implementation runs after each phase.
func (r *PathResult) CheckLengthInvariant() error {
	for asID := range r.Labels {
		paths, err := r.Paths(asID)
		if err != nil {
			return err
		}

		for _, p := range paths {
			if len(p) != r.Labels[asID].Length {
				return fmt.Errorf("valleyfree: %s: path length %d does not match label length %d", asID, len(p), r.Labels[asID].Length)
			}
		}
	}

	return nil
}
