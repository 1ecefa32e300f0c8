// File path: internal/glossary/confidence_test.go
package glossary

import "testing"

func TestConfidenceLabel(t *testing.T) {
	cases := []struct {
		similarity float64
		want       string
	}{
		{0.90, ConfidenceHigh},
		{0.60, ConfidenceMedium},
		{0.40, ConfidenceLow},
		{0.0, ConfidenceLow},
		{1.0, ConfidenceHigh},
	}
	for _, tc := range cases {
		if got := ConfidenceLabel(tc.similarity); got != tc.want {
			t.Fatalf("ConfidenceLabel(%v) = %q, want %q", tc.similarity, got, tc.want)
		}
	}
}

// Both bucket boundaries are exclusive.
func TestConfidenceLabelBoundaries(t *testing.T) {
	if got := ConfidenceLabel(0.85); got != ConfidenceMedium {
		t.Fatalf("ConfidenceLabel(0.85) = %q, want medium", got)
	}
	if got := ConfidenceLabel(0.5); got != ConfidenceLow {
		t.Fatalf("ConfidenceLabel(0.5) = %q, want low", got)
	}
}
