package client

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// Callbacks receives the typed events of one streamed reply. Nil callbacks
// are skipped.
type Callbacks struct {
	OnChunk      func(text string)
	OnSuggestion func(s domain.SuggestionEntry)
	OnAction     func(a domain.Action)
	OnComplete   func()
}

// Decoder incrementally parses an SSE stream fed to it in arbitrary byte
// slices. Lines split across feeds are carried over; a malformed line is
// logged and skipped without disturbing the rest of the stream.
type Decoder struct {
	callbacks Callbacks
	logger    *slog.Logger

	buffer    string
	eventType string
	done      bool
}

// NewDecoder creates a decoder dispatching to callbacks.
func NewDecoder(callbacks Callbacks, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{callbacks: callbacks, logger: logger}
}

// Done reports whether the terminal done marker has been seen.
func (d *Decoder) Done() bool { return d.done }

// Feed consumes the next chunk of stream bytes. It returns a non-nil error
// only for a terminal error event from the server.
func (d *Decoder) Feed(p []byte) error {
	if d.done {
		return nil
	}
	d.buffer += string(p)
	lines := strings.Split(d.buffer, "\n")
	// The last element is an incomplete line fragment; hold it back.
	d.buffer = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		if err := d.line(line); err != nil {
			return err
		}
		if d.done {
			return nil
		}
	}
	return nil
}

func (d *Decoder) line(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if strings.HasPrefix(line, "event: ") {
		// Applies to the next data line only.
		d.eventType = strings.TrimSpace(line[len("event: "):])
		return nil
	}

	if !strings.HasPrefix(line, "data: ") {
		return nil
	}
	data := line[len("data: "):]
	eventType := d.eventType
	d.eventType = ""

	if data == "[DONE]" {
		d.done = true
		if d.callbacks.OnComplete != nil {
			d.callbacks.OnComplete()
		}
		return nil
	}

	switch eventType {
	case "suggestion":
		var s domain.SuggestionEntry
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			d.logger.Warn("skipping malformed suggestion event", "error", err, "line", line)
			return nil
		}
		if d.callbacks.OnSuggestion != nil {
			d.callbacks.OnSuggestion(s)
		}
	case "action":
		var a domain.Action
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			d.logger.Warn("skipping malformed action event", "error", err, "line", line)
			return nil
		}
		if d.callbacks.OnAction != nil {
			d.callbacks.OnAction(a)
		}
	default:
		var ev struct {
			Content string `json:"content"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			d.logger.Warn("skipping malformed data line", "error", err, "line", line)
			return nil
		}
		if ev.Error != "" {
			return domain.NewAPIError(domain.ErrorTypeProvider, ev.Error)
		}
		if ev.Content != "" && d.callbacks.OnChunk != nil {
			d.callbacks.OnChunk(ev.Content)
		}
	}
	return nil
}
