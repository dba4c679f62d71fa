package search

// Similarity computes an edit-distance-based similarity between two strings:
// 1 - levenshtein(a,b) / max(len(a), len(b)), always in [0,1]. Identical
// strings score 1.0; the score is symmetric.
//
// Two empty strings score 1.0 (a trivial perfect match). This mirrors the
// source-data contract and is pinned by tests; callers that treat an empty
// identifier as "absent" must filter before scoring.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the minimum number of single-character insertions,
// deletions and substitutions to transform a into b. Two rolling DP rows are
// allocated per call, so concurrent requests never share scorer state.
// O(len(a)*len(b)) time, O(len(b)) space.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			best := prev[j-1] + cost // substitution
			if del := prev[j] + 1; del < best {
				best = del
			}
			if ins := curr[j-1] + 1; ins < best {
				best = ins
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
