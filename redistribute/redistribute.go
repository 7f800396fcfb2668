// Package redistribute implements the probability redistributor (C6):
// turning a weight vector into a k-sample-without-replacement draw
// probability vector, capping every item at 1/k (§4.6).
package redistribute

import "errors"

// ErrEmptyDistribution is returned when the input weights sum to zero.
var ErrEmptyDistribution = errors.New("redistribute: empty distribution")

// ErrInvalidCap is returned when k is not in [1, len(w)].
var ErrInvalidCap = errors.New("redistribute: cap must be between 1 and len(w)")

// Redistribute scales w to a k-sample draw-without-replacement
// probability vector: every entry is capped at 1/k, with the excess
// mass above that cap redistributed proportionally among the
// remaining uncapped entries, iterated until no entry exceeds the cap.
func Redistribute(w []float64, k int) ([]float64, error) {
	n := len(w)
	if k < 1 || k > n {
		return nil, ErrInvalidCap
	}

	var sum float64
	for _, wi := range w {
		sum += wi
	}
	if sum == 0 {
		return nil, ErrEmptyDistribution
	}

	t := make([]float64, n)
	for i, wi := range w {
		t[i] = float64(k) * wi / sum
	}

	pinned := make([]bool, n)
	pinnedCount := 0

	for {
		anyOverflow := false
		for i, ti := range t {
			if !pinned[i] && ti > 1 {
				pinned[i] = true
				pinnedCount++
				anyOverflow = true
			}
		}
		if !anyOverflow {
			break
		}

		var survivorSum float64
		for i, ti := range t {
			if !pinned[i] {
				survivorSum += ti
			}
		}

		budget := float64(k - pinnedCount)
		for i := range t {
			if pinned[i] {
				t[i] = 1
			} else if survivorSum > 0 {
				t[i] = t[i] / survivorSum * budget
			}
		}
	}

	p := make([]float64, n)
	for i, ti := range t {
		p[i] = ti / float64(k)
	}

	return p, nil
}
