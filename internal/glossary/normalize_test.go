// File path: internal/glossary/normalize_test.go
package glossary

import "testing"

func TestNormalizeNameFoldsCaseAndWhitespace(t *testing.T) {
	cases := []string{" Foo ", "foo", "FOO", "\tfoo\n"}
	want := NormalizeName("foo")
	for _, input := range cases {
		if got := NormalizeName(input); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeNameCollapsesInteriorWhitespace(t *testing.T) {
	if got := NormalizeName("Vector   Database"); got != "vector database" {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestNormalizeNameEmpty(t *testing.T) {
	if got := NormalizeName("   "); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
}
