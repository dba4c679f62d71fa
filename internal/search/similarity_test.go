package search

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"14123456789", "1412345678", 1},
		{"ab", "ba", 2},
	}

	for _, tt := range tests {
		got := levenshtein(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{
			name: "identical non-empty",
			a:    "14123456789",
			b:    "14123456789",
			want: 1.0,
		},
		{
			// Documented contract: two empty strings are a trivial perfect
			// match. Flagged for product review, pinned here.
			name: "both empty",
			a:    "",
			b:    "",
			want: 1.0,
		},
		{
			name: "completely disjoint",
			a:    "aaaa",
			b:    "bbbb",
			want: 0.0,
		},
		{
			name: "one edit in ten characters",
			a:    "1234567890",
			b:    "1234567891",
			want: 0.9,
		},
		{
			name: "empty against non-empty",
			a:    "",
			b:    "abcd",
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"14123456789", "1412345678"},
		{"kitten", "sitting"},
		{"", "abc"},
		{"short", "a much longer string"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but Similarity(%q, %q) = %v",
				p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestSimilarityBounded(t *testing.T) {
	pairs := [][2]string{
		{"a", "zzzzzzzzzz"},
		{"14-1234", "totally different"},
		{"x", ""},
		{"same", "same"},
	}

	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want value in [0,1]", p[0], p[1], got)
		}
	}
}
