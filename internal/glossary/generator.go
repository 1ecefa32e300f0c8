// File path: internal/glossary/generator.go
package glossary

import (
	"context"
	"fmt"

	"github.com/opengloss/glossd/internal/common"
	"github.com/opengloss/glossd/internal/llm/providers"
)

const definitionSystemPrompt = "You are an analyst maintaining an AI ecosystem glossary. " +
	"Respond with JSON only, no prose and no code fences. " +
	"Return an object with keys: canonical_name, category_primary, summary, " +
	"definition_md, strategic_importance, companies. " +
	"companies is an array of objects with keys: name (required), public, " +
	"revenue_estimate, funding_total, description. " +
	"Keep definition_md at or under 750 words, operator-grade, and cover the " +
	"commercial landscape briefly."

// Generator asks the chat provider for a structured term definition and
// decodes the untrusted reply.
type Generator struct {
	provider providers.Provider
}

func NewGenerator(provider providers.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate produces a structured definition for the raw term. The reply is
// validated through DecodeDefinition; malformed output fails the call with a
// *DecodeError carrying the offending text.
func (g *Generator) Generate(ctx context.Context, term string) (*GeneratedDefinition, error) {
	if g == nil || g.provider == nil {
		return nil, fmt.Errorf("generator provider not configured")
	}
	logger := common.Logger()
	logger.Debug("glossary: requesting definition", "term", term)
	messages := []providers.Message{
		{Role: "system", Content: definitionSystemPrompt},
		{Role: "user", Content: "Define the AI ecosystem term: " + term},
	}
	raw, err := g.provider.Chat(ctx, messages)
	if err != nil {
		logger.Error("glossary: definition request failed", "term", term, "error", err)
		return nil, err
	}
	def, err := DecodeDefinition(raw)
	if err != nil {
		logger.Error("glossary: definition decode failed", "term", term, "error", err)
		return nil, err
	}
	logger.Debug("glossary: definition decoded", "term", term, "companies", len(def.Companies))
	return def, nil
}
