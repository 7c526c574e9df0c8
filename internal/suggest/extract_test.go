package suggest

import (
	"testing"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

func findByType(list []domain.Suggestion, typ domain.SuggestionType) []domain.Suggestion {
	var out []domain.Suggestion
	for _, s := range list {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	return out
}

func TestExtract_Features(t *testing.T) {
	text := "I suggest a real-time chat feature for your app. " +
		"You might want an offline mode feature too."

	got := findByType(Extract(text), domain.SuggestionFeature)
	if len(got) != 2 {
		t.Fatalf("extracted %d features, want 2: %+v", len(got), got)
	}
	if got[0].Title != "real-time chat" {
		t.Errorf("Title = %q, want %q", got[0].Title, "real-time chat")
	}
	if got[0].Preview.Feature == nil || got[0].Preview.Feature.Priority != "medium" {
		t.Errorf("feature preview = %+v, want medium priority default", got[0].Preview)
	}
	if got[0].Status != domain.SuggestionPending {
		t.Errorf("Status = %q, want pending", got[0].Status)
	}
}

func TestExtract_Pages(t *testing.T) {
	text := "You'll need a settings page for account management. Create an onboarding screen as well."

	got := findByType(Extract(text), domain.SuggestionPage)
	if len(got) != 2 {
		t.Fatalf("extracted %d pages, want 2: %+v", len(got), got)
	}
	if got[0].Title != "settings" {
		t.Errorf("Title = %q, want %q", got[0].Title, "settings")
	}
	if got[1].Title != "onboarding" {
		t.Errorf("Title = %q, want %q", got[1].Title, "onboarding")
	}
}

func TestExtract_Journeys(t *testing.T) {
	text := "User journey: sign up, verify email, complete profile."

	got := findByType(Extract(text), domain.SuggestionJourney)
	if len(got) != 1 {
		t.Fatalf("extracted %d journeys, want 1: %+v", len(got), got)
	}
	if got[0].Title != "User Journey" {
		t.Errorf("Title = %q, want User Journey", got[0].Title)
	}
	if got[0].Description == "" {
		t.Error("journey description should carry the matched flow text")
	}
}

func TestExtract_DeduplicatesByTypeAndTitle(t *testing.T) {
	text := "I suggest a notifications feature. I recommend a Notifications feature."

	got := findByType(Extract(text), domain.SuggestionFeature)
	if len(got) != 1 {
		t.Fatalf("extracted %d features, want 1 after dedup: %+v", len(got), got)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	if got := Extract("The weather is nice today."); len(got) != 0 {
		t.Errorf("Extract() = %+v, want none", got)
	}
}
