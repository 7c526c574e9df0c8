// Package memory is an in-memory Store for tests and keyless development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/storage"
)

// Store keeps everything in maps guarded by one mutex. Contents vanish on
// restart.
type Store struct {
	mu        sync.RWMutex
	projects  map[string]storage.Project
	messages  map[string][]storage.Message // keyed by project ID
	artifacts map[string]storage.Artifact
	usage     []storage.UsageRecord
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		projects:  make(map[string]storage.Project),
		messages:  make(map[string][]storage.Message),
		artifacts: make(map[string]storage.Artifact),
	}
}

func (s *Store) CreateProject(ctx context.Context, p *storage.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.projects[p.ID] = *p
	return nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*storage.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound("project " + id)
	}
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]storage.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]storage.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateProject(ctx context.Context, p *storage.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.projects[p.ID]
	if !ok {
		return domain.ErrNotFound("project " + p.ID)
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.projects[p.ID] = *p
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound("project " + id)
	}
	delete(s.projects, id)
	delete(s.messages, id)
	for aid, a := range s.artifacts {
		if a.ProjectID == id {
			delete(s.artifacts, aid)
		}
	}
	return nil
}

func (s *Store) AppendMessage(ctx context.Context, m *storage.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[m.ProjectID]; !ok {
		return domain.ErrNotFound("project " + m.ProjectID)
	}
	m.CreatedAt = time.Now().UTC()
	s.messages[m.ProjectID] = append(s.messages[m.ProjectID], *m)
	return nil
}

func (s *Store) ListMessages(ctx context.Context, projectID string) ([]storage.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[projectID]
	out := make([]storage.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *Store) SaveArtifact(ctx context.Context, a *storage.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[a.ProjectID]; !ok {
		return domain.ErrNotFound("project " + a.ProjectID)
	}
	a.CreatedAt = time.Now().UTC()
	s.artifacts[a.ID] = *a
	return nil
}

func (s *Store) ListArtifacts(ctx context.Context, projectID string, typ domain.SuggestionType) ([]storage.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storage.Artifact
	for _, a := range s.artifacts {
		if a.ProjectID != projectID {
			continue
		}
		if typ != "" && a.Type != typ {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteArtifact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.artifacts[id]; !ok {
		return domain.ErrNotFound("artifact " + id)
	}
	delete(s.artifacts, id)
	return nil
}

func (s *Store) RecordUsage(ctx context.Context, u *storage.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.CreatedAt = time.Now().UTC()
	s.usage = append(s.usage, *u)
	return nil
}

func (s *Store) UsageTotals(ctx context.Context, projectID string) (domain.Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total domain.Usage
	for _, u := range s.usage {
		if u.ProjectID != projectID {
			continue
		}
		total.PromptTokens += u.PromptTokens
		total.CompletionTokens += u.CompletionTokens
		total.TotalTokens += u.TotalTokens
	}
	return total, nil
}

func (s *Store) Close() error { return nil }
