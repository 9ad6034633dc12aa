// Package llm provides the chat completion client used for answer generation.
package llm

import "context"

// ChatClient sends a composed prompt to a generative model and returns the
// raw answer text.
type ChatClient interface {
	// Chat sends the prompt as a single user message and returns the
	// model's reply. Failures are classified with the sentinel errors in
	// errors.go so callers can map them without touching transport details.
	Chat(ctx context.Context, prompt string) (string, error)

	// Close releases any resources held by the client.
	Close() error
}
