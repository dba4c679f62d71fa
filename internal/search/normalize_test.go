package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "lowercase passthrough",
			input: "abc123",
			want:  "abc123",
		},
		{
			name:  "uppercase folded",
			input: "ABC-123",
			want:  "abc123",
		},
		{
			name:  "parcel id punctuation stripped",
			input: "14-1234-56-789",
			want:  "14123456789",
		},
		{
			name:  "spaces and symbols stripped",
			input: "  TAX # 00 42 / A ",
			want:  "tax0042a",
		},
		{
			name:  "only punctuation",
			input: "---//##",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "14-1234-56-789", "ABC 123", "abc123", "##--##"}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeEquatesFormattingVariants(t *testing.T) {
	a := "123-45-678"
	b := "12345678"

	if Normalize(a) != Normalize(b) {
		t.Errorf("Normalize(%q) = %q, Normalize(%q) = %q, want equal",
			a, Normalize(a), b, Normalize(b))
	}
	if got := Similarity(Normalize(a), Normalize(b)); got != 1.0 {
		t.Errorf("Similarity of normalized variants = %v, want 1.0", got)
	}
}
