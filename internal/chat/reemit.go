package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// Reemitter buffers an entire provider token stream, parses it as a
// structured response, and replays it to the client as paced word fragments
// followed by suggestion and action events. A stream that fails to parse
// degrades to a single raw-text fragment, so a provider that ignores the JSON
// contract still produces a readable reply.
type Reemitter struct {
	// WordDelay is the pacing delay between message words. Zero disables
	// pacing.
	WordDelay time.Duration
	Logger    *slog.Logger
}

// Run consumes the token stream to completion and writes the resulting
// events. An error chunk from the provider terminates the stream with a
// single error event; every other outcome ends with a done marker.
func (r *Reemitter) Run(ctx context.Context, chunks <-chan domain.TokenChunk, w EventWriter) error {
	var buf strings.Builder
	for c := range chunks {
		if c.Err != nil {
			r.logger().ErrorContext(ctx, "provider stream failed", "error", c.Err)
			return w.Error(ErrorMessage)
		}
		buf.WriteString(c.Text)
	}
	return r.emit(ctx, buf.String(), w)
}

func (r *Reemitter) emit(ctx context.Context, raw string, w EventWriter) error {
	// Message is a pointer so a reply that omits it entirely is
	// distinguishable from an empty string and degrades like invalid JSON.
	var parsed struct {
		Message     *string                  `json:"message"`
		Suggestions []domain.SuggestionEntry `json:"suggestions"`
		Actions     []domain.Action          `json:"actions"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		r.logger().WarnContext(ctx, "response is not structured JSON, passing through", "error", err)
		return r.passthrough(raw, w)
	}
	if parsed.Message == nil {
		r.logger().WarnContext(ctx, "structured reply has no message, passing through")
		return r.passthrough(raw, w)
	}

	words := strings.Split(*parsed.Message, " ")
	for i, word := range words {
		if i < len(words)-1 {
			word += " "
		}
		if err := w.Content(word); err != nil {
			return err
		}
		if i < len(words)-1 && r.WordDelay > 0 {
			select {
			case <-time.After(r.WordDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	for _, s := range parsed.Suggestions {
		if err := w.Suggestion(s); err != nil {
			return err
		}
	}
	for _, a := range parsed.Actions {
		if err := w.Action(a); err != nil {
			return err
		}
	}
	return w.Done()
}

func (r *Reemitter) passthrough(raw string, w EventWriter) error {
	if err := w.Content(raw); err != nil {
		return err
	}
	return w.Done()
}

func (r *Reemitter) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
