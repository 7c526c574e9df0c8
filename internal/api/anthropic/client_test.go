package anthropic

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/flexos-dev/builder-gateway/internal/testutil"
)

func testClient(t *testing.T, cassette string) (*Client, func()) {
	t.Helper()

	rec, cleanup := testutil.NewVCRRecorder(t, cassette)

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		apiKey = "test-key"
	}

	return NewClient(apiKey, WithHTTPClient(testutil.VCRHTTPClient(rec))), cleanup
}

func TestClient_CreateMessage(t *testing.T) {
	client, cleanup := testClient(t, "anthropic_complete")
	defer cleanup()

	temp := float32(0.7)
	resp, err := client.CreateMessage(context.Background(), &MessagesRequest{
		Model:       "claude-3-opus-20240229",
		MaxTokens:   1000,
		System:      "You are a helpful assistant.",
		Temperature: &temp,
		Messages: []Message{
			{Role: "user", Content: "Hello"},
		},
	})
	if err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	if resp.Text() == "" {
		t.Error("Expected text content in response")
	}
	if resp.Usage.InputTokens == 0 {
		t.Error("Expected non-zero input token usage")
	}
}

func TestClient_StreamMessage(t *testing.T) {
	client, cleanup := testClient(t, "anthropic_stream")
	defer cleanup()

	temp := float32(0.7)
	events, err := client.StreamMessage(context.Background(), &MessagesRequest{
		Model:       "claude-3-opus-20240229",
		MaxTokens:   1000,
		System:      "You are a helpful assistant.",
		Temperature: &temp,
		Messages: []Message{
			{Role: "user", Content: "Hello"},
		},
	})
	if err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}

	var full strings.Builder
	for ev := range events {
		if ev.Err != nil {
			t.Fatalf("stream error = %v", ev.Err)
		}
		if ev.EventType != "content_block_delta" {
			continue
		}
		delta, err := ev.ParseContentBlockDelta()
		if err != nil {
			t.Fatalf("ParseContentBlockDelta() error = %v", err)
		}
		full.WriteString(delta.Delta.Text)
	}

	if !strings.Contains(full.String(), "\"message\"") {
		t.Errorf("assembled stream = %q, want a JSON object with a message field", full.String())
	}
}

func TestMessagesResponse_Text(t *testing.T) {
	resp := &MessagesResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "part one"},
			{Type: "tool_use"},
			{Type: "text", Text: " part two"},
		},
	}

	if got := resp.Text(); got != "part one part two" {
		t.Errorf("Text() = %q, want %q", got, "part one part two")
	}
}
