// Package client is the Go consumer for the builder gateway API: a unary
// chat call and a streaming call that dispatches typed SSE events to
// callbacks.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// Client talks to a builder gateway instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	streaming atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIKey sets the bearer token sent on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the gateway at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsStreaming reports whether a StreamMessage call is in flight.
func (c *Client) IsStreaming() bool { return c.streaming.Load() }

// Reply is the result of a unary chat call.
type Reply struct {
	Content string
	Usage   domain.Usage
}

// SendMessage performs a unary chat call. A success=false envelope becomes an
// error carrying the server's message.
func (c *Client) SendMessage(ctx context.Context, req *domain.ChatRequest) (*Reply, error) {
	resp, err := c.post(ctx, "/api/chat", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}

	var envelope struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Usage   domain.Usage `json:"usage"`
		Error   string       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = "failed to get response"
		}
		return nil, domain.ErrProvider(msg)
	}

	return &Reply{Content: envelope.Message, Usage: envelope.Usage}, nil
}

// StreamMessage performs a streaming chat call, dispatching events to
// callbacks as they arrive. It returns when the stream completes or fails;
// the streaming flag is cleared on both paths.
func (c *Client) StreamMessage(ctx context.Context, req *domain.ChatRequest, callbacks Callbacks) error {
	c.streaming.Store(true)
	defer c.streaming.Store(false)

	resp, err := c.post(ctx, "/api/chat-stream", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream request failed with status %d", resp.StatusCode)
	}

	dec := NewDecoder(callbacks, c.logger)
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if err := dec.Feed(buf[:n]); err != nil {
				return err
			}
			if dec.Done() {
				return nil
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				// Server closed without a done marker. Treat as complete.
				if callbacks.OnComplete != nil {
					callbacks.OnComplete()
				}
				return nil
			}
			return domain.NewAPIError(domain.ErrorTypeProtocol, readErr.Error())
		}
	}
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.httpClient.Do(req)
}
