// Package sqlite is the durable Store backed by a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/flexos-dev/builder-gateway/internal/domain"
	"github.com/flexos-dev/builder-gateway/internal/storage"
)

// Store implements storage.Store on SQLite.
type Store struct {
	db *sqlx.DB
}

var _ storage.Store = (*Store)(nil)

// New opens or creates the database at path and ensures the schema exists.
func New(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection so the pragmas below apply to every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL; PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			target_audience TEXT NOT NULL DEFAULT '',
			vision TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			preview TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS usage_records (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			provider TEXT NOT NULL,
			prompt_tokens INTEGER NOT NULL,
			completion_tokens INTEGER NOT NULL,
			total_tokens INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_project ON messages(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_project ON artifacts(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_type ON artifacts(project_id, type)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_project ON usage_records(project_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateProject(ctx context.Context, p *storage.Project) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO projects (id, name, description, target_audience, vision, created_at, updated_at)
		 VALUES (:id, :name, :description, :target_audience, :vision, :created_at, :updated_at)`, p)
	return err
}

func (s *Store) GetProject(ctx context.Context, id string) (*storage.Project, error) {
	var p storage.Project
	err := s.db.GetContext(ctx, &p, `SELECT * FROM projects WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("project " + id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]storage.Project, error) {
	out := []storage.Project{}
	err := s.db.SelectContext(ctx, &out, `SELECT * FROM projects ORDER BY created_at`)
	return out, err
}

func (s *Store) UpdateProject(ctx context.Context, p *storage.Project) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.NamedExecContext(ctx,
		`UPDATE projects SET name = :name, description = :description,
		 target_audience = :target_audience, vision = :vision, updated_at = :updated_at
		 WHERE id = :id`, p)
	if err != nil {
		return err
	}
	return s.checkAffected(res, "project "+p.ID)
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return s.checkAffected(res, "project "+id)
}

func (s *Store) AppendMessage(ctx context.Context, m *storage.Message) error {
	if _, err := s.GetProject(ctx, m.ProjectID); err != nil {
		return err
	}
	m.CreatedAt = time.Now().UTC()
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO messages (id, project_id, role, content, created_at)
		 VALUES (:id, :project_id, :role, :content, :created_at)`, m)
	return err
}

func (s *Store) ListMessages(ctx context.Context, projectID string) ([]storage.Message, error) {
	out := []storage.Message{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT * FROM messages WHERE project_id = ? ORDER BY created_at, id`, projectID)
	return out, err
}

// artifactRow carries the JSON-encoded preview column.
type artifactRow struct {
	storage.Artifact
	PreviewJSON string `db:"preview"`
}

func (s *Store) SaveArtifact(ctx context.Context, a *storage.Artifact) error {
	if _, err := s.GetProject(ctx, a.ProjectID); err != nil {
		return err
	}
	preview, err := json.Marshal(a.Preview)
	if err != nil {
		return err
	}
	a.CreatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO artifacts (id, project_id, type, title, description, preview, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ProjectID, a.Type, a.Title, a.Description, string(preview), a.CreatedAt)
	return err
}

func (s *Store) ListArtifacts(ctx context.Context, projectID string, typ domain.SuggestionType) ([]storage.Artifact, error) {
	query := `SELECT * FROM artifacts WHERE project_id = ?`
	args := []any{projectID}
	if typ != "" {
		query += ` AND type = ?`
		args = append(args, typ)
	}
	query += ` ORDER BY created_at, id`

	rows := []artifactRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]storage.Artifact, 0, len(rows))
	for _, r := range rows {
		a := r.Artifact
		if err := json.Unmarshal([]byte(r.PreviewJSON), &a.Preview); err != nil {
			return nil, fmt.Errorf("artifact %s has corrupt preview: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) DeleteArtifact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return s.checkAffected(res, "artifact "+id)
}

func (s *Store) RecordUsage(ctx context.Context, u *storage.UsageRecord) error {
	u.CreatedAt = time.Now().UTC()
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO usage_records (id, project_id, provider, prompt_tokens, completion_tokens, total_tokens, created_at)
		 VALUES (:id, :project_id, :provider, :prompt_tokens, :completion_tokens, :total_tokens, :created_at)`, u)
	return err
}

func (s *Store) UsageTotals(ctx context.Context, projectID string) (domain.Usage, error) {
	var totals struct {
		Prompt     int `db:"prompt"`
		Completion int `db:"completion"`
		Total      int `db:"total"`
	}
	err := s.db.GetContext(ctx, &totals,
		`SELECT COALESCE(SUM(prompt_tokens), 0) AS prompt,
		        COALESCE(SUM(completion_tokens), 0) AS completion,
		        COALESCE(SUM(total_tokens), 0) AS total
		 FROM usage_records WHERE project_id = ?`, projectID)
	if err != nil {
		return domain.Usage{}, err
	}
	return domain.Usage{
		PromptTokens:     totals.Prompt,
		CompletionTokens: totals.Completion,
		TotalTokens:      totals.Total,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) checkAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound(what)
	}
	return nil
}
