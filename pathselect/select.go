// Package pathselect breaks ties among equally-short valley-free AS
// paths by recursive lexicographic comparison of AS numbers (§4.5).
package pathselect

import (
	"errors"
	"strconv"
)

// ErrNoCandidates is returned when Select is given an empty path list.
var ErrNoCandidates = errors.New("pathselect: no candidate paths")

// Select deterministically picks one path out of candidates, all of
// which must be the same length (§4.3's invariant guarantees this for
// any (client, guard) pair fed in by the batch driver). At each index,
// starting from 0, it keeps only the candidates whose AS number at
// that index is numerically smallest, narrowing the field one index
// at a time until a single path remains.
//
// AS identifiers are treated as opaque strings everywhere else in this
// module; this is the one place §4.5 calls for numeric comparison. An
// identifier that does not parse as an integer falls back to a plain
// string comparison at that index, so the selector still terminates
// deterministically on non-numeric input instead of panicking.
func Select(candidates [][]string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	return narrow(candidates, 0), nil
}

func narrow(candidates [][]string, index int) []string {
	if len(candidates) == 1 {
		return candidates[0]
	}

	best := candidates[0]
	survivors := [][]string{best}

	for _, cand := range candidates[1:] {
		switch compareAt(cand, best, index) {
		case -1:
			best = cand
			survivors = [][]string{cand}
		case 0:
			survivors = append(survivors, cand)
		}
	}

	if len(survivors) == 1 {
		return survivors[0]
	}

	return narrow(survivors, index+1)
}

// compareAt compares a and b at index, returning -1, 0, or 1. Numeric
// AS identifiers compare by value; anything else compares as a string.
func compareAt(a, b []string, index int) int {
	an, aErr := strconv.Atoi(a[index])
	bn, bErr := strconv.Atoi(b[index])

	if aErr == nil && bErr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	switch {
	case a[index] < b[index]:
		return -1
	case a[index] > b[index]:
		return 1
	default:
		return 0
	}
}
