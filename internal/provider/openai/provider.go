// Package openai adapts the OpenAI chat completions API to the gateway's
// Provider interface.
package openai

import (
	"context"
	"fmt"

	api "github.com/flexos-dev/builder-gateway/internal/api/openai"
	"github.com/flexos-dev/builder-gateway/internal/domain"
)

const (
	defaultModel = "gpt-4-turbo-preview"
	maxTokens    = 1000
	temperature  = float32(0.7)
)

// Provider implements domain.Provider against the OpenAI API.
type Provider struct {
	client *api.Client
}

// New creates an OpenAI provider.
func New(apiKey string, opts ...api.ClientOption) *Provider {
	return &Provider{client: api.NewClient(apiKey, opts...)}
}

func (p *Provider) Name() string { return "openai" }

// Complete performs a unary chat completion.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.Completion, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(req, false))
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: response contained no choices")
	}

	return &domain.Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: domain.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Stream performs a streaming chat completion, yielding raw text fragments.
// The JSON response format is requested so the whole stream assembles into a
// single structured object.
func (p *Provider) Stream(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.TokenChunk, error) {
	results, err := p.client.StreamChatCompletion(ctx, p.buildRequest(req, true))
	if err != nil {
		return nil, err
	}

	out := make(chan domain.TokenChunk)
	go func() {
		defer close(out)
		for res := range results {
			if res.Err != nil {
				out <- domain.TokenChunk{Err: res.Err}
				return
			}
			for _, choice := range res.Chunk.Choices {
				if choice.Delta.Content != "" {
					out <- domain.TokenChunk{Text: choice.Delta.Content}
				}
			}
		}
	}()
	return out, nil
}

func (p *Provider) buildRequest(req *domain.CompletionRequest, structured bool) *api.ChatCompletionRequest {
	temp := temperature
	messages := make([]api.ChatCompletionMessage, 0, len(req.Messages)+1)
	messages = append(messages, api.ChatCompletionMessage{Role: "system", Content: req.SystemPrompt})
	for _, m := range req.Messages {
		messages = append(messages, api.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	out := &api.ChatCompletionRequest{
		Model:       defaultModel,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: &temp,
	}
	if structured {
		out.ResponseFormat = &api.ResponseFormat{Type: "json_object"}
	}
	return out
}
