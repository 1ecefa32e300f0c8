// File path: internal/glossary/category_test.go
package glossary

import "testing"

func TestCoerceCategory(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Models", CategoryModels},
		{"foundation model research", CategoryModels},
		{"Compute", CategoryCompute},
		{"GPU infrastructure", CategoryCompute},
		{"Data Infrastructure", CategoryData},
		{"vector search", CategoryData},
		{"developer tooling", CategoryTooling},
		{"DevOps", CategoryTooling},
		{"consumer apps", CategoryApplications},
		{"Safety review", CategorySafety},
		{"AI governance", CategorySafety},
		{"market analysis", CategoryBusiness},
		{"business strategy", CategoryBusiness},
		{"", CategoryTooling},
		{"something unrecognizable", CategoryTooling},
	}
	for _, tc := range cases {
		if got := CoerceCategory(tc.input); got != tc.want {
			t.Fatalf("CoerceCategory(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// Priority order is authoritative: "data platform" contains keywords for both
// Data and Tooling & DevOps, and Data is checked first.
func TestCoerceCategoryPriorityOrder(t *testing.T) {
	if got := CoerceCategory("data platform"); got != CategoryData {
		t.Fatalf("expected Data to win, got %q", got)
	}
	if got := CoerceCategory("model marketplace"); got != CategoryModels {
		t.Fatalf("expected Models to win, got %q", got)
	}
}
