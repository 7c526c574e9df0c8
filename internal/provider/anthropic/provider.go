// Package anthropic adapts the Anthropic messages API to the gateway's
// Provider interface.
package anthropic

import (
	"context"

	api "github.com/flexos-dev/builder-gateway/internal/api/anthropic"
	"github.com/flexos-dev/builder-gateway/internal/domain"
)

const (
	defaultModel = "claude-3-opus-20240229"
	maxTokens    = 1000
	temperature  = float32(0.7)
)

// Provider implements domain.Provider against the Anthropic API.
type Provider struct {
	client *api.Client
}

// New creates an Anthropic provider.
func New(apiKey string, opts ...api.ClientOption) *Provider {
	return &Provider{client: api.NewClient(apiKey, opts...)}
}

func (p *Provider) Name() string { return "anthropic" }

// Complete performs a unary messages call.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.Completion, error) {
	resp, err := p.client.CreateMessage(ctx, p.buildRequest(req))
	if err != nil {
		return nil, err
	}

	return &domain.Completion{
		Text: resp.Text(),
		Usage: domain.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// Stream performs a streaming messages call, yielding raw text fragments.
func (p *Provider) Stream(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.TokenChunk, error) {
	events, err := p.client.StreamMessage(ctx, p.buildRequest(req))
	if err != nil {
		return nil, err
	}

	out := make(chan domain.TokenChunk)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Err != nil {
				out <- domain.TokenChunk{Err: ev.Err}
				return
			}
			if ev.EventType != "content_block_delta" {
				continue
			}
			delta, err := ev.ParseContentBlockDelta()
			if err != nil {
				out <- domain.TokenChunk{Err: err}
				// Unblock the SSE reader's pending sends so it can finish
				// and close the response body.
				for range events {
				}
				return
			}
			if delta.Delta.Text != "" {
				out <- domain.TokenChunk{Text: delta.Delta.Text}
			}
		}
	}()
	return out, nil
}

// buildRequest converts the canonical request. The messages API has no system
// role; system turns fold into user turns and the system prompt rides in its
// own field.
func (p *Provider) buildRequest(req *domain.CompletionRequest) *api.MessagesRequest {
	temp := temperature
	messages := make([]api.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		messages = append(messages, api.Message{Role: role, Content: m.Content})
	}

	return &api.MessagesRequest{
		Model:       defaultModel,
		MaxTokens:   maxTokens,
		System:      req.SystemPrompt,
		Temperature: &temp,
		Messages:    messages,
	}
}
