package chat

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

func TestSSEWriter_Framing(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewSSEWriter(rr)

	if err := w.Content("hello "); err != nil {
		t.Fatal(err)
	}
	if err := w.Suggestion(domain.SuggestionEntry{
		Type: domain.SuggestionPage,
		Page: &domain.PageData{Name: "Home", Description: "Landing", Type: "public"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.Action(domain.Action{
		Type:         domain.ActionUpdateVision,
		UpdateVision: &domain.UpdateVisionData{Vision: "v"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.Done(); err != nil {
		t.Fatal(err)
	}

	if got := rr.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-cache" {
		t.Errorf("Cache-Control = %q", got)
	}

	body := rr.Body.String()
	for _, want := range []string{
		"data: {\"content\":\"hello \"}\n\n",
		"event: suggestion\ndata: {\"type\":\"page\"",
		"event: action\ndata: {\"type\":\"update_vision\"",
		"data: [DONE]\n\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if !strings.HasSuffix(body, "data: [DONE]\n\n") {
		t.Error("done marker must be last")
	}
}

func TestSSEWriter_Error(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewSSEWriter(rr)

	if err := w.Error(ErrorMessage); err != nil {
		t.Fatal(err)
	}

	want := "data: {\"error\":\"Failed to process message. Please try again.\"}\n\n"
	if rr.Body.String() != want {
		t.Errorf("body = %q, want %q", rr.Body.String(), want)
	}
}
