// Package suggest maintains the suggestion queue and extracts implied
// suggestions from free-form assistant text. Extraction is a heuristic
// fallback for replies that never produced structured suggestion events.
package suggest

import (
	"regexp"
	"strings"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

var featurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)I (?:suggest|recommend|think you need|would add) (?:a |an |the )?(.+?) feature`),
	regexp.MustCompile(`(?i)You (?:might want|should consider|could add) (?:a |an |the )?(.+?) feature`),
	regexp.MustCompile(`(?i)How about (?:adding |implementing )?(.+?)\?`),
	regexp.MustCompile(`(?i)(?:Feature suggestion|Recommendation):\s*(.+?)(?:\.|$)`),
}

var pagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)You'll need (?:a |an |the )?(.+?) (?:page|screen)`),
	regexp.MustCompile(`(?i)Create (?:a |an |the )?(.+?) (?:page|screen)`),
	regexp.MustCompile(`(?i)(?:Page|Screen) suggestion:\s*(.+?)(?:\.|$)`),
}

var journeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)User journey:\s*(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)(?:When|After) (?:a |the )?user (.+?),`),
	regexp.MustCompile(`(?i)The flow (?:would be|should be):\s*(.+?)(?:\.|$)`),
}

// Extract scans assistant text for phrasing that implies feature, page, or
// journey suggestions. Duplicates by (type, title) are dropped, first match
// wins. Mockups are never extracted; they only arrive as structured events.
func Extract(text string) []domain.Suggestion {
	var out []domain.Suggestion
	seen := make(map[string]bool)

	add := func(s domain.Suggestion) {
		key := string(s.Type) + "\x00" + strings.ToLower(strings.TrimSpace(s.Title))
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	for _, p := range featurePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			title := strings.TrimSpace(m[1])
			if title == "" {
				continue
			}
			add(domain.NewSuggestion(domain.SuggestionFeature,
				title,
				"Suggested feature based on our conversation",
				domain.Preview{Feature: &domain.FeaturePreview{
					Priority: "medium",
					Category: "Suggested Features",
				}}))
		}
	}

	for _, p := range pagePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			title := strings.TrimSpace(m[1])
			if title == "" {
				continue
			}
			add(domain.NewSuggestion(domain.SuggestionPage,
				title,
				"Suggested page to include in your app",
				domain.Preview{Page: &domain.PagePreview{
					Type:     "page",
					Sections: []string{},
				}}))
		}
	}

	for _, p := range journeyPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			desc := strings.TrimSpace(m[1])
			if desc == "" {
				continue
			}
			add(domain.NewSuggestion(domain.SuggestionJourney,
				"User Journey",
				desc,
				domain.Preview{Journey: &domain.JourneyPreview{
					Steps: []domain.JourneyStep{},
				}}))
		}
	}

	return out
}
