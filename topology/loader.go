package topology

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadStats reports what happened while parsing a topology stream:
// useful for the CLI's diagnostic log without aborting the load.
type LoadStats struct {
	Lines      int // non-comment, non-blank lines seen
	Edges      int // relationship records accepted, self-loops (ignored by AddRelationship) included
	Duplicates int // records that matched an already-stored relationship
}

// Load parses a CAIDA-style relationship stream (one record per line,
// `ASN1|ASN2|REL[|<ignored tail>]`, `#`-prefixed comment lines ignored)
// into a fresh Graph. REL must be -1 (ASN1 provider of ASN2) or 0 (peers);
// any other token is a fatal %w-wrapped ErrTopologyParse.
//
// Duplicate edges are tolerated (and counted in LoadStats.Duplicates, not
// treated as an error) per §4.1.
func Load(r io.Reader) (*Graph, LoadStats, error) {
	g := NewGraph()
	stats := LoadStats{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			return nil, stats, fmt.Errorf("%w: line %d: expected at least 3 fields, got %d", ErrTopologyParse, lineNo, len(fields))
		}

		asn1, asn2 := fields[0], fields[1]
		rel, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, stats, fmt.Errorf("%w: line %d: relationship field %q is not an integer", ErrTopologyParse, lineNo, fields[2])
		}

		stats.Lines++

		switch rel {
		case -1:
			if hasRel(g, asn1, asn2, P2C) {
				stats.Duplicates++
			}
			g.AddRelationship(asn1, asn2, P2C)
		case 0:
			if hasRel(g, asn1, asn2, P2P) {
				stats.Duplicates++
			}
			g.AddRelationship(asn1, asn2, P2P)
		default:
			return nil, stats, fmt.Errorf("%w: line %d: relationship must be -1 or 0, got %d", ErrTopologyParse, lineNo, rel)
		}
		stats.Edges++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("topology: reading input: %w", err)
	}

	return g, stats, nil
}

// hasRel reports whether the relationship described by (a, b, kind) is
// already present, so Load can count duplicates before AddRelationship's
// idempotent insert makes that impossible to observe afterwards.
func hasRel(g *Graph, a, b string, kind RelKind) bool {
	switch kind {
	case P2C:
		if n := g.node(a); n != nil {
			_, ok := n.Customers[b]

			return ok
		}
	case P2P:
		if n := g.node(a); n != nil {
			_, ok := n.Peers[b]

			return ok
		}
	}

	return false
}
