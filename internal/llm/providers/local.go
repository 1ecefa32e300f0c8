// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// localEmbedDim matches the vector column width so the offline provider can
// drive the full write and search path against a real store.
const localEmbedDim = 1536

// LocalProvider is an offline stand-in used when no API key is configured.
// Chat emits a canned definition payload and Embed derives a deterministic
// pseudo-embedding from the input text.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	subject := strings.TrimSpace(messages[len(messages)-1].Content)
	if idx := strings.LastIndex(subject, "term:"); idx >= 0 {
		subject = strings.TrimSpace(subject[idx+len("term:"):])
	}
	if nl := strings.IndexByte(subject, '\n'); nl >= 0 {
		subject = strings.TrimSpace(subject[:nl])
	}
	payload := map[string]interface{}{
		"canonical_name":       subject,
		"category_primary":     "Tooling & DevOps",
		"summary":              "Locally generated placeholder definition for " + subject + ".",
		"definition_md":        "## " + subject + "\n\nPlaceholder definition produced by the offline provider.",
		"strategic_importance": "unknown",
		"companies":            []interface{}{},
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (l *LocalProvider) Embed(ctx context.Context, input []string) ([][]float32, error) {
	vectors := make([][]float32, len(input))
	for i, text := range input {
		vectors[i] = pseudoEmbedding(text)
	}
	return vectors, nil
}

func (l *LocalProvider) Name() string {
	return "local"
}

func pseudoEmbedding(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(text))))
	seed := h.Sum64()
	vec := make([]float32, localEmbedDim)
	var norm float64
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		v := float64(int64(seed>>11))/float64(1<<52) - 1
		vec[i] = float32(v)
		norm += v * v
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}
