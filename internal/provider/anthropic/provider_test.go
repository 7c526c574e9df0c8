package anthropic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	api "github.com/flexos-dev/builder-gateway/internal/api/anthropic"
	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// closeTracker wraps response bodies so tests can observe when the stream
// reader closes them.
type closeTracker struct {
	rt     http.RoundTripper
	closed chan struct{}
}

func (c *closeTracker) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.rt.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Body = &trackedBody{ReadCloser: resp.Body, closed: c.closed}
	return resp, nil
}

type trackedBody struct {
	io.ReadCloser
	once   sync.Once
	closed chan struct{}
}

func (b *trackedBody) Close() error {
	b.once.Do(func() { close(b.closed) })
	return b.ReadCloser.Close()
}

// A malformed delta must surface exactly one error chunk, and the SSE reader
// must still drain to completion so the response body gets closed instead of
// the reader blocking forever on its channel send.
func TestStream_MalformedDeltaClosesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("event: content_block_delta\ndata: {not json\n\n"))
		for i := 0; i < 64; i++ {
			w.Write([]byte("event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"index\":0,\"delta\":{\"type\":\"text_delta\",\"text\":\"x\"}}\n\n"))
		}
		w.Write([]byte("event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n"))
	}))
	defer srv.Close()

	tracker := &closeTracker{rt: http.DefaultTransport, closed: make(chan struct{})}
	p := New("test-key",
		api.WithBaseURL(srv.URL),
		api.WithHTTPClient(&http.Client{Transport: tracker}))

	chunks, err := p.Stream(context.Background(), &domain.CompletionRequest{
		Messages: []domain.ChatTurn{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	var errs int
	for c := range chunks {
		if c.Err != nil {
			errs++
			continue
		}
		t.Errorf("unexpected text chunk %q after the malformed delta", c.Text)
	}
	if errs != 1 {
		t.Errorf("error chunks = %d, want exactly 1", errs)
	}

	select {
	case <-tracker.closed:
	case <-time.After(2 * time.Second):
		t.Error("response body never closed, stream reader still blocked")
	}
}
