// File path: internal/glossary/normalize.go
package glossary

import "strings"

// NormalizeName folds a free-text name to the canonical lookup key used for
// uniqueness checks: surrounding whitespace trimmed, interior runs of
// whitespace collapsed to single spaces, lowered.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
