package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSuggestionEntry_WireShape(t *testing.T) {
	entry := SuggestionEntry{
		Type:    SuggestionFeature,
		Feature: &FeatureData{Name: "Search", Description: "Find things", Priority: "high"},
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), `{"type":"feature","data":{`) {
		t.Errorf("wire shape = %s", data)
	}

	var back SuggestionEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Feature == nil || back.Feature.Name != "Search" {
		t.Errorf("round trip = %+v", back)
	}
}

func TestSuggestionEntry_UnknownTypeRejected(t *testing.T) {
	var e SuggestionEntry
	if err := json.Unmarshal([]byte(`{"type":"widget","data":{}}`), &e); err == nil {
		t.Error("unknown suggestion type should fail to decode")
	}
}

func TestSuggestionEntry_MissingDataDefaultsEmpty(t *testing.T) {
	var e SuggestionEntry
	if err := json.Unmarshal([]byte(`{"type":"page"}`), &e); err != nil {
		t.Fatalf("missing data should decode to an empty payload: %v", err)
	}
	if e.Page == nil {
		t.Error("page variant not populated")
	}
}

func TestPromoteSuggestion_Defaults(t *testing.T) {
	s, err := PromoteSuggestion(SuggestionEntry{Type: SuggestionFeature, Feature: &FeatureData{}})
	if err != nil {
		t.Fatal(err)
	}
	if s.Title != "New Feature" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Preview.Feature == nil || s.Preview.Feature.Priority != "medium" || s.Preview.Feature.Category != "Core Features" {
		t.Errorf("preview = %+v", s.Preview.Feature)
	}
	if s.Status != SuggestionPending {
		t.Errorf("Status = %q, want pending", s.Status)
	}
	if !strings.HasPrefix(s.ID, "suggestion-") {
		t.Errorf("ID = %q", s.ID)
	}

	m, err := PromoteSuggestion(SuggestionEntry{Type: SuggestionMockup, Mockup: &MockupData{Name: "Home"}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Title != "Home" || m.Preview.Mockup == nil || m.Preview.Mockup.Type != "Page" {
		t.Errorf("mockup promotion = %+v", m)
	}

	if _, err := PromoteSuggestion(SuggestionEntry{Type: "widget"}); err == nil {
		t.Error("unknown type should fail to promote")
	}
}

func TestAction_RoundTripAndUnknown(t *testing.T) {
	a := Action{Type: ActionUpdateTargetAudience, UpdateTargetAudience: &UpdateTargetAudienceData{TargetAudience: "Founders"}}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"targetAudience":"Founders"`) {
		t.Errorf("wire = %s", data)
	}

	var back Action
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.UpdateTargetAudience == nil || back.UpdateTargetAudience.TargetAudience != "Founders" {
		t.Errorf("round trip = %+v", back)
	}

	var bad Action
	if err := json.Unmarshal([]byte(`{"type":"explode","data":{}}`), &bad); err == nil {
		t.Error("unknown action type should fail to decode")
	}
}
