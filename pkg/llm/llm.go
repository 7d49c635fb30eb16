package llm

import "context"

// LLM submits a single prompt to a completion service and returns the raw
// text of the reply. Implementations make exactly one request: no retries,
// no streaming, no caching.
type LLM interface {
	Chat(ctx context.Context, prompt string) (string, error)
	Provider() Provider
	Model() string
}
