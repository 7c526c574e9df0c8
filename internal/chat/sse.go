package chat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// SSEWriter writes re-emitter events as server-sent events. Content and error
// events are unnamed data lines; suggestion and action events carry an
// explicit event name so clients can dispatch on type.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares the response for streaming and returns the writer.
// Headers are written immediately.
func NewSSEWriter(w http.ResponseWriter) *SSEWriter {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)
	return &SSEWriter{w: w, flusher: flusher}
}

type contentEvent struct {
	Content string `json:"content"`
}

type errorEvent struct {
	Error string `json:"error"`
}

func (s *SSEWriter) Content(text string) error {
	return s.writeEvent("", contentEvent{Content: text})
}

func (s *SSEWriter) Suggestion(sg domain.SuggestionEntry) error {
	return s.writeEvent("suggestion", sg)
}

func (s *SSEWriter) Action(a domain.Action) error {
	return s.writeEvent("action", a)
}

func (s *SSEWriter) Error(msg string) error {
	return s.writeEvent("", errorEvent{Error: msg})
}

func (s *SSEWriter) Done() error {
	if _, err := io.WriteString(s.w, "data: [DONE]\n\n"); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *SSEWriter) writeEvent(name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if name != "" {
		if _, err := fmt.Fprintf(s.w, "event: %s\n", name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *SSEWriter) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
