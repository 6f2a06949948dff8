// Package plate provides canonical plate text handling.
//
// OCR output for a license plate is noisy: stray punctuation, whitespace,
// and separator dashes are common. Normalize reduces any raw string to its
// canonical form — ASCII letters and digits only — which is the form all
// downstream matching operates on.
package plate

import "strings"

// Normalize strips every character outside [A-Za-z0-9] from s, preserving
// the relative order and case of the surviving characters.
//
// The function is total (never fails) and idempotent: applying it twice
// yields the same result as applying it once. Only ASCII alphanumerics
// survive; no Unicode folding or locale handling is performed.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
