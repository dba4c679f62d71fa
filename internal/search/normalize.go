package search

import "strings"

// Normalize canonicalizes an identifier string for comparison: lower-cases
// the input and strips every character outside [a-z0-9]. Punctuation and
// spacing noise from upstream sources ("14-1234-56-789", "14 1234 56 789")
// collapse to the same canonical form. Returns "" for empty input.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
