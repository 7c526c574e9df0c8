package domain

import (
	"context"
)

// CompletionRequest is the canonical request handed to a provider. Real
// providers consume SystemPrompt and Messages; the mock provider additionally
// keys its canned replies off ActiveTab and Project.
type CompletionRequest struct {
	SystemPrompt string
	Messages     []ChatTurn
	ActiveTab    string
	Project      ProjectContext
}

// Provider defines the interface for LLM backends. Providers are stateless
// per call and hold no mutable state between requests.
type Provider interface {
	Name() string

	// Complete handles unary requests (non-streaming).
	Complete(ctx context.Context, req *CompletionRequest) (*Completion, error)

	// Stream returns a channel of raw token fragments. The channel MUST be
	// closed by the provider when done. An Err chunk is terminal.
	Stream(ctx context.Context, req *CompletionRequest) (<-chan TokenChunk, error)
}
