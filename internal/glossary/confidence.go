// File path: internal/glossary/confidence.go
package glossary

// Confidence labels derived from similarity scores.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ConfidenceLabel buckets a similarity score. Both bounds are strict:
// exactly 0.85 is medium and exactly 0.5 is low.
func ConfidenceLabel(similarity float64) string {
	switch {
	case similarity > 0.85:
		return ConfidenceHigh
	case similarity > 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
