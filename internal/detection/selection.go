package detection

import "fmt"

// A Selector picks which of the surviving candidates advances to OCR.
// Exactly one candidate is ever processed further; the policy for
// choosing it is explicit and swappable rather than an implicit index.
type Selector func(candidates []Candidate) (Candidate, bool)

// FirstCandidate selects the first region in discovery order. This is the
// historical behavior of the recognizer and the default policy.
func FirstCandidate(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[0], true
}

// LargestArea selects the candidate with the greatest area, on the theory
// that the biggest plate-like region is the vehicle closest to the
// camera. Ties keep the earlier-discovered region.
func LargestArea(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Area > best.Area {
			best = c
		}
	}
	return best, true
}

// SelectorByName resolves a configured policy name.
func SelectorByName(name string) (Selector, error) {
	switch name {
	case "", "first":
		return FirstCandidate, nil
	case "largest":
		return LargestArea, nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", name)
	}
}
