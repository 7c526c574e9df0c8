// Package storage defines the persistence layer for projects, conversation
// history, accepted product artifacts, and token usage.
package storage

import (
	"context"
	"time"

	"github.com/flexos-dev/builder-gateway/internal/domain"
)

// Project is a stored product-definition project.
type Project struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	TargetAudience string    `json:"targetAudience" db:"target_audience"`
	Vision         string    `json:"vision" db:"vision"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Message is one stored conversation turn belonging to a project.
type Message struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"projectId" db:"project_id"`
	Role      string    `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Artifact is an accepted suggestion persisted as part of a project: a
// feature, page, journey, or mockup.
type Artifact struct {
	ID          string                `json:"id" db:"id"`
	ProjectID   string                `json:"projectId" db:"project_id"`
	Type        domain.SuggestionType `json:"type" db:"type"`
	Title       string                `json:"title" db:"title"`
	Description string                `json:"description" db:"description"`
	Preview     domain.Preview        `json:"preview" db:"-"`
	CreatedAt   time.Time             `json:"createdAt" db:"created_at"`
}

// UsageRecord is the token usage of one provider call.
type UsageRecord struct {
	ID               string    `json:"id" db:"id"`
	ProjectID        string    `json:"projectId" db:"project_id"`
	Provider         string    `json:"provider" db:"provider"`
	PromptTokens     int       `json:"promptTokens" db:"prompt_tokens"`
	CompletionTokens int       `json:"completionTokens" db:"completion_tokens"`
	TotalTokens      int       `json:"totalTokens" db:"total_tokens"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// Store is the full persistence surface. The memory implementation backs
// tests and keyless development; SQLite is the durable option.
type Store interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id string) error

	AppendMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, projectID string) ([]Message, error)

	SaveArtifact(ctx context.Context, a *Artifact) error
	// ListArtifacts returns a project's artifacts, optionally filtered by
	// type. An empty type means all.
	ListArtifacts(ctx context.Context, projectID string, typ domain.SuggestionType) ([]Artifact, error)
	DeleteArtifact(ctx context.Context, id string) error

	RecordUsage(ctx context.Context, u *UsageRecord) error
	// UsageTotals sums recorded usage for a project.
	UsageTotals(ctx context.Context, projectID string) (domain.Usage, error)

	Close() error
}
