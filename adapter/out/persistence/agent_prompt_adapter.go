package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agent_server/core/domain"
	"agent_server/core/port/out"
	"agent_server/pkg/apperr"

	"github.com/jmoiron/sqlx"
)

// PromptAdapter implements out.PromptRepository using SQLite.
type PromptAdapter struct {
	db *sqlx.DB
}

// NewPromptAdapter creates a new PromptAdapter.
func NewPromptAdapter(db *sqlx.DB) *PromptAdapter {
	return &PromptAdapter{db: db}
}

// promptRow represents the database row for prompt templates.
type promptRow struct {
	Task      string    `db:"task"`
	Content   string    `db:"content"`
	Revision  int       `db:"revision"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *promptRow) toEntity() *domain.PromptTemplate {
	return &domain.PromptTemplate{
		Task:      domain.TaskType(r.Task),
		Content:   r.Content,
		Revision:  r.Revision,
		UpdatedAt: r.UpdatedAt,
	}
}

// Get retrieves the prompt template for a task.
func (a *PromptAdapter) Get(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error) {
	query := `SELECT * FROM prompts WHERE task = ?`

	var row promptRow
	err := a.db.QueryRowxContext(ctx, query, string(task)).StructScan(&row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("prompt template")
		}
		return nil, apperr.DatabaseError("get prompt", err)
	}

	return row.toEntity(), nil
}

// Set overwrites the template content in place and bumps its revision.
func (a *PromptAdapter) Set(ctx context.Context, task domain.TaskType, content string) (*domain.PromptTemplate, error) {
	query := `
		INSERT INTO prompts (task, content, revision, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(task) DO UPDATE SET
			content = excluded.content,
			revision = prompts.revision + 1,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := a.db.ExecContext(ctx, query, string(task), content); err != nil {
		return nil, apperr.DatabaseError("set prompt", err)
	}

	return a.Get(ctx, task)
}

// Reset restores the default content for a task.
func (a *PromptAdapter) Reset(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error) {
	defaultContent := domain.DefaultPromptContent(task)
	if defaultContent == "" {
		return nil, apperr.BadRequest(fmt.Sprintf("unknown task: %s", task))
	}
	return a.Set(ctx, task, defaultContent)
}

// SeedDefaults inserts default templates for tasks that have none.
// Existing user edits are left alone.
func (a *PromptAdapter) SeedDefaults(ctx context.Context) error {
	query := `INSERT INTO prompts (task, content) VALUES (?, ?) ON CONFLICT(task) DO NOTHING`

	for _, task := range domain.AllTasks() {
		if _, err := a.db.ExecContext(ctx, query, string(task), domain.DefaultPromptContent(task)); err != nil {
			return apperr.DatabaseError("seed prompts", err)
		}
	}
	return nil
}

// Ensure PromptAdapter implements out.PromptRepository
var _ out.PromptRepository = (*PromptAdapter)(nil)
