// File path: internal/llm/providers/provider.go
package providers

import "context"

// Message is a single chat exchange entry passed to a provider.
type Message struct {
	Role    string
	Content string
}

// Provider abstracts the hosted model service used for generation and
// embedding so the workflow and handlers can run against test doubles.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Embed(ctx context.Context, input []string) ([][]float32, error)
	Name() string
}
