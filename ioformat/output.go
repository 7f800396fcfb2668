package ioformat

import (
	"encoding/json"
	"fmt"
	"io"
)

// LoadResilienceScores decodes the §6 resilience output shape back
// into memory: { client_AS: { guard_AS: score } }. cmd/riskagg reads
// a previously-computed resilience file this way as one of its inputs.
func LoadResilienceScores(r io.Reader) (map[string]map[string]float64, error) {
	var scores map[string]map[string]float64
	if err := json.NewDecoder(r).Decode(&scores); err != nil {
		return nil, fmt.Errorf("ioformat: decoding resilience scores: %w", err)
	}

	return scores, nil
}

// WriteResilience writes the §6 resilience output shape:
// { client_AS: { guard_AS: score } }. encoding/json sorts map keys on
// its own when marshalling, so per-client and per-guard output is
// invariant to the iteration order the scorer produced it in.
func WriteResilience(w io.Writer, scores map[string]map[string]float64) error {
	enc := json.NewEncoder(w)

	return enc.Encode(scores)
}

// PathPair is one (client, guard)'s forward and reverse AS paths.
type PathPair struct {
	Forward []string
	Reverse []string
}

// WritePaths writes the §6 predicted-path output shape:
// { client_AS: { guard_AS: [forward_path, reverse_path] } }.
func WritePaths(w io.Writer, paths map[string]map[string]PathPair) error {
	shaped := make(map[string]map[string][2][]string, len(paths))
	for client, byGuard := range paths {
		inner := make(map[string][2][]string, len(byGuard))
		for guard, pair := range byGuard {
			inner[guard] = [2][]string{pair.Forward, pair.Reverse}
		}
		shaped[client] = inner
	}

	enc := json.NewEncoder(w)

	return enc.Encode(shaped)
}

// WriteRisk writes the §6 aggregated-risk output shape: one float per
// line, one line per client, in the order clientOrder names — the
// order the batch driver received them in, not any score ordering.
func WriteRisk(w io.Writer, clientOrder []string, scores map[string]float64) error {
	for _, client := range clientOrder {
		if _, err := fmt.Fprintf(w, "%g\n", scores[client]); err != nil {
			return fmt.Errorf("ioformat: writing risk output: %w", err)
		}
	}

	return nil
}
