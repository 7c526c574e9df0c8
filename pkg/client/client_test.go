package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

func TestClient_SendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req domain.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Tell me more.",
			"usage":   domain.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	reply, err := c.SendMessage(context.Background(), &domain.ChatRequest{
		Messages:  []domain.ChatTurn{{Role: "user", Content: "hi"}},
		ActiveTab: "vision",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if reply.Content != "Tell me more." || reply.Usage.TotalTokens != 15 {
		t.Errorf("reply = %+v", reply)
	}
}

func TestClient_SendMessage_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "Failed to process message. Please try again.",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))
	_, err := c.SendMessage(context.Background(), &domain.ChatRequest{})
	if err == nil {
		t.Fatal("SendMessage() should fail on success=false")
	}
	if !strings.Contains(err.Error(), "Failed to process message") {
		t.Errorf("err = %v, want the server message", err)
	}
}

func TestClient_StreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat-stream" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(sampleStream))
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))

	var got captured
	err := c.StreamMessage(context.Background(), &domain.ChatRequest{ActiveTab: "vision"}, captureCallbacks(&got))
	if err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}

	if s := strings.Join(got.chunks, ""); s != "Hello world" {
		t.Errorf("chunks = %q", s)
	}
	if len(got.suggestions) != 1 || len(got.actions) != 1 || !got.complete {
		t.Errorf("events = %+v", got)
	}
	if c.IsStreaming() {
		t.Error("streaming flag must clear after completion")
	}
}

func TestClient_StreamMessage_ErrorEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"error\":\"Failed to process message. Please try again.\"}\n\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithLogger(testLogger()))

	var got captured
	err := c.StreamMessage(context.Background(), &domain.ChatRequest{}, captureCallbacks(&got))
	if err == nil {
		t.Fatal("StreamMessage() should surface the error event")
	}
	if got.complete {
		t.Error("error stream must not invoke OnComplete")
	}
	if c.IsStreaming() {
		t.Error("streaming flag must clear on error")
	}
}

func TestClient_StreamMessage_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithAPIKey("sk-test"), WithLogger(testLogger()))
	if err := c.StreamMessage(context.Background(), &domain.ChatRequest{}, Callbacks{}); err != nil {
		t.Fatalf("StreamMessage() error = %v", err)
	}
}
