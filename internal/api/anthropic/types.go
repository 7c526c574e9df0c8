// Package anthropic provides a minimal HTTP client for the Anthropic
// messages API, covering only what the builder gateway uses.
package anthropic

import (
	"encoding/json"
	"strings"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// Message represents a message in the conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// MessagesRequest represents a messages API request.
type MessagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
	System      string    `json:"system,omitempty"`
	Temperature *float32  `json:"temperature,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

// ContentBlock is a block of response content.
type ContentBlock struct {
	Type string `json:"type"` // "text"
	Text string `json:"text,omitempty"`
}

// Usage reports token consumption.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MessagesResponse represents a complete messages API response.
type MessagesResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      Usage          `json:"usage"`
}

// Text concatenates all text content blocks.
func (r *MessagesResponse) Text() string {
	var b strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}

// Delta is the payload of a content_block_delta event.
type Delta struct {
	Type string `json:"type"` // "text_delta"
	Text string `json:"text,omitempty"`
}

// ContentBlockDeltaEvent is emitted for each streamed text fragment.
type ContentBlockDeltaEvent struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Delta Delta  `json:"delta"`
}

// ErrorResponse represents an Anthropic API error response.
type ErrorResponse struct {
	Type  string    `json:"type"`
	Error *APIError `json:"error"`
}

// APIError contains error details.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Type + ": " + e.Message
}

// ToCanonical converts the Anthropic API error to a canonical domain error.
func (e *APIError) ToCanonical() *domain.APIError {
	return domain.ErrProvider(e.Message)
}

// ParseErrorResponse parses an error body from the API. Returns nil if the
// body does not carry the expected error envelope.
func ParseErrorResponse(body []byte) (*APIError, error) {
	if !strings.Contains(string(body), "error") {
		return nil, nil
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return nil, err
	}
	return errResp.Error, nil
}
