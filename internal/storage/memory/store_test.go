package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/storage"
)

func TestStore_ProjectLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := &storage.Project{ID: uuid.NewString(), Name: "TaskFlow", Description: "Tasks for teams"}
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	got, err := s.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if got.Name != "TaskFlow" {
		t.Errorf("Name = %q, want TaskFlow", got.Name)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set on create")
	}

	got.Vision = "Effortless coordination"
	if err := s.UpdateProject(ctx, got); err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}
	updated, _ := s.GetProject(ctx, p.ID)
	if updated.Vision != "Effortless coordination" {
		t.Errorf("Vision = %q after update", updated.Vision)
	}

	if err := s.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if _, err := s.GetProject(ctx, p.ID); err == nil {
		t.Error("GetProject() after delete should fail")
	}
}

func TestStore_GetProject_NotFound(t *testing.T) {
	s := New()

	_, err := s.GetProject(context.Background(), "missing")
	apiErr, ok := err.(*domain.APIError)
	if !ok || apiErr.Type != domain.ErrorTypeNotFound {
		t.Errorf("err = %v, want a not_found APIError", err)
	}
}

func TestStore_MessagesAndArtifacts(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := &storage.Project{ID: uuid.NewString(), Name: "TaskFlow"}
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatal(err)
	}

	for _, m := range []storage.Message{
		{ID: uuid.NewString(), ProjectID: p.ID, Role: "user", Content: "hi"},
		{ID: uuid.NewString(), ProjectID: p.ID, Role: "assistant", Content: "hello"},
	} {
		m := m
		if err := s.AppendMessage(ctx, &m); err != nil {
			t.Fatalf("AppendMessage() error = %v", err)
		}
	}

	msgs, err := s.ListMessages(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 || msgs[0].Role != "user" {
		t.Errorf("messages = %+v, want the two turns in order", msgs)
	}

	feature := &storage.Artifact{
		ID:        uuid.NewString(),
		ProjectID: p.ID,
		Type:      domain.SuggestionFeature,
		Title:     "Search",
		Preview:   domain.Preview{Feature: &domain.FeaturePreview{Priority: "high", Category: "Core"}},
	}
	page := &storage.Artifact{
		ID:        uuid.NewString(),
		ProjectID: p.ID,
		Type:      domain.SuggestionPage,
		Title:     "Home",
		Preview:   domain.Preview{Page: &domain.PagePreview{Type: "public", Sections: []string{"Hero"}}},
	}
	if err := s.SaveArtifact(ctx, feature); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveArtifact(ctx, page); err != nil {
		t.Fatal(err)
	}

	features, err := s.ListArtifacts(ctx, p.ID, domain.SuggestionFeature)
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 1 || features[0].Title != "Search" {
		t.Errorf("features = %+v, want just Search", features)
	}

	all, err := s.ListArtifacts(ctx, p.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("all artifacts = %d, want 2", len(all))
	}

	// Deleting the project cascades.
	if err := s.DeleteProject(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	left, _ := s.ListArtifacts(ctx, p.ID, "")
	if len(left) != 0 {
		t.Errorf("artifacts after project delete = %d, want 0", len(left))
	}
}

func TestStore_UsageTotals(t *testing.T) {
	s := New()
	ctx := context.Background()
	projectID := uuid.NewString()

	for _, u := range []storage.UsageRecord{
		{ID: uuid.NewString(), ProjectID: projectID, Provider: "openai", PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		{ID: uuid.NewString(), ProjectID: projectID, Provider: "anthropic", PromptTokens: 20, CompletionTokens: 10, TotalTokens: 30},
		{ID: uuid.NewString(), ProjectID: "other", Provider: "mock", PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2},
	} {
		u := u
		if err := s.RecordUsage(ctx, &u); err != nil {
			t.Fatal(err)
		}
	}

	total, err := s.UsageTotals(ctx, projectID)
	if err != nil {
		t.Fatal(err)
	}
	if total.TotalTokens != 180 || total.PromptTokens != 120 || total.CompletionTokens != 60 {
		t.Errorf("totals = %+v, want 120/60/180", total)
	}
}
