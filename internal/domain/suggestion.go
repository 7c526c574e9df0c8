package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SuggestionType identifies the kind of product artifact a suggestion
// proposes. The set is closed; unknown values are rejected at decode time.
type SuggestionType string

const (
	SuggestionFeature SuggestionType = "feature"
	SuggestionPage    SuggestionType = "page"
	SuggestionJourney SuggestionType = "journey"
	SuggestionMockup  SuggestionType = "mockup"
)

// FeatureData is the payload of a feature suggestion.
type FeatureData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
}

// PageData is the payload of a page suggestion.
type PageData struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type,omitempty"`
	Sections    []string `json:"sections,omitempty"`
}

// JourneyStep is one step of a user journey.
type JourneyStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// JourneyData is the payload of a journey suggestion.
type JourneyData struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Steps       []JourneyStep `json:"steps,omitempty"`
}

// MockupData is the payload of a mockup suggestion.
type MockupData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
	Content     string `json:"content,omitempty"`
}

// SuggestionEntry is a suggestion as it appears on the wire, inside a
// StructuredResponse or as the payload of a "suggestion" stream event. The
// Data variant is keyed by Type; exactly one variant is populated.
type SuggestionEntry struct {
	Type    SuggestionType
	Feature *FeatureData
	Page    *PageData
	Journey *JourneyData
	Mockup  *MockupData
}

// MarshalJSON emits the {"type": ..., "data": {...}} wire shape.
func (e SuggestionEntry) MarshalJSON() ([]byte, error) {
	var data any
	switch e.Type {
	case SuggestionFeature:
		data = e.Feature
	case SuggestionPage:
		data = e.Page
	case SuggestionJourney:
		data = e.Journey
	case SuggestionMockup:
		data = e.Mockup
	default:
		return nil, fmt.Errorf("unknown suggestion type %q", e.Type)
	}
	return json.Marshal(struct {
		Type SuggestionType `json:"type"`
		Data any            `json:"data"`
	}{Type: e.Type, Data: data})
}

// UnmarshalJSON decodes the {"type": ..., "data": {...}} wire shape into the
// variant matching the declared type.
func (e *SuggestionEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type SuggestionType  `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = SuggestionEntry{Type: raw.Type}
	if len(raw.Data) == 0 {
		raw.Data = []byte("{}")
	}
	switch raw.Type {
	case SuggestionFeature:
		e.Feature = &FeatureData{}
		return json.Unmarshal(raw.Data, e.Feature)
	case SuggestionPage:
		e.Page = &PageData{}
		return json.Unmarshal(raw.Data, e.Page)
	case SuggestionJourney:
		e.Journey = &JourneyData{}
		return json.Unmarshal(raw.Data, e.Journey)
	case SuggestionMockup:
		e.Mockup = &MockupData{}
		return json.Unmarshal(raw.Data, e.Mockup)
	default:
		return fmt.Errorf("unknown suggestion type %q", raw.Type)
	}
}

// SuggestionStatus is the lifecycle state of a queued suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
	SuggestionModified SuggestionStatus = "modified"
)

// Preview is the type-specific preview payload attached to a queued
// suggestion. Like SuggestionEntry, exactly one variant is populated.
type Preview struct {
	Feature *FeaturePreview `json:"feature,omitempty"`
	Page    *PagePreview    `json:"page,omitempty"`
	Journey *JourneyPreview `json:"journey,omitempty"`
	Mockup  *MockupPreview  `json:"mockup,omitempty"`
}

type FeaturePreview struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Status   string `json:"status,omitempty"`
}

type PagePreview struct {
	Type     string   `json:"type"`
	Sections []string `json:"sections"`
}

type JourneyPreview struct {
	Steps []JourneyStep `json:"steps"`
}

type MockupPreview struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Suggestion is a queued product-artifact proposal awaiting a user decision.
// Identity is the generated ID; deduplication is by (Type, Title).
type Suggestion struct {
	ID          string           `json:"id"`
	Type        SuggestionType   `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Preview     Preview          `json:"preview"`
	Timestamp   time.Time        `json:"timestamp"`
	Status      SuggestionStatus `json:"status"`
}

// NewSuggestion creates a pending suggestion with a fresh ID and timestamp.
func NewSuggestion(typ SuggestionType, title, description string, preview Preview) Suggestion {
	return Suggestion{
		ID:          "suggestion-" + uuid.NewString(),
		Type:        typ,
		Title:       title,
		Description: description,
		Preview:     preview,
		Timestamp:   time.Now().UTC(),
		Status:      SuggestionPending,
	}
}

// PromoteSuggestion converts a wire-level suggestion entry into a queued
// Suggestion record, filling in type-specific defaults for missing fields.
func PromoteSuggestion(e SuggestionEntry) (Suggestion, error) {
	switch e.Type {
	case SuggestionFeature:
		d := e.Feature
		if d == nil {
			d = &FeatureData{}
		}
		return NewSuggestion(SuggestionFeature,
			orDefault(d.Name, "New Feature"),
			orDefault(d.Description, "Feature discovered from conversation"),
			Preview{Feature: &FeaturePreview{
				Priority: orDefault(d.Priority, "medium"),
				Category: orDefault(d.Category, "Core Features"),
				Status:   orDefault(d.Status, "discovered"),
			}}), nil
	case SuggestionPage:
		d := e.Page
		if d == nil {
			d = &PageData{}
		}
		sections := d.Sections
		if sections == nil {
			sections = []string{}
		}
		return NewSuggestion(SuggestionPage,
			orDefault(d.Name, "New Page"),
			orDefault(d.Description, "Page discovered from conversation"),
			Preview{Page: &PagePreview{
				Type:     orDefault(d.Type, "page"),
				Sections: sections,
			}}), nil
	case SuggestionJourney:
		d := e.Journey
		if d == nil {
			d = &JourneyData{}
		}
		steps := d.Steps
		if steps == nil {
			steps = []JourneyStep{}
		}
		return NewSuggestion(SuggestionJourney,
			orDefault(d.Name, "User Journey"),
			orDefault(d.Description, "User journey discovered from conversation"),
			Preview{Journey: &JourneyPreview{Steps: steps}}), nil
	case SuggestionMockup:
		d := e.Mockup
		if d == nil {
			d = &MockupData{}
		}
		return NewSuggestion(SuggestionMockup,
			orDefault(d.Name, "New Mockup"),
			orDefault(d.Description, "Visual mockup suggestion"),
			Preview{Mockup: &MockupPreview{
				Type:    orDefault(d.Type, "Page"),
				Content: d.Content,
			}}), nil
	default:
		return Suggestion{}, fmt.Errorf("unknown suggestion type %q", e.Type)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
