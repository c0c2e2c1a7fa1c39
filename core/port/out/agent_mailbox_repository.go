package out

import (
	"context"

	"agent_server/core/domain"
)

// MailboxRepository is the persistence contract for emails and their
// derived enrichment state. Every derived-field write is a full replace
// of that field, never a partial merge.
type MailboxRepository interface {
	// GetEmail returns the email or apperr.NotFound.
	GetEmail(ctx context.Context, id string) (*domain.Email, error)

	// ListEmails returns emails matching the filter, newest first.
	ListEmails(ctx context.Context, filter *domain.EmailFilter) ([]*domain.Email, error)

	// SaveEmail inserts the email if its id is absent and reports whether
	// a row was written. Existing rows are never overwritten so derived
	// state survives re-syncs.
	SaveEmail(ctx context.Context, email *domain.Email) (bool, error)

	// DeleteEmail removes the email and, via cascade, its drafts.
	DeleteEmail(ctx context.Context, id string) error

	// ReplaceCategory replaces the category field and marks the
	// categorize task done. Fails with apperr.NotFound for unknown ids.
	ReplaceCategory(ctx context.Context, id string, category domain.Category, promptRev int) error

	// ReplaceActionItems replaces the full action-item set (delete-all
	// then set semantics) and records the parse-failure flag.
	ReplaceActionItems(ctx context.Context, id string, items []domain.ActionItem, parseFailed bool, promptRev int) error

	// ReplaceDraft replaces the latest generated draft reply.
	ReplaceDraft(ctx context.Context, id string, draft string, promptRev int) error

	// MarkTaskFailed sets the task's status to failed without touching
	// the previously stored derived value.
	MarkTaskFailed(ctx context.Context, id string, task domain.TaskType) error
}

// PromptRepository stores the per-task prompt templates.
type PromptRepository interface {
	// Get returns the template for a task, or apperr.NotFound when the
	// task name is unknown.
	Get(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error)

	// Set overwrites the template content in place and bumps its revision.
	Set(ctx context.Context, task domain.TaskType, content string) (*domain.PromptTemplate, error)

	// Reset restores the default content for a task.
	Reset(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error)

	// SeedDefaults inserts default templates for tasks that have none.
	SeedDefaults(ctx context.Context) error
}

// DraftRepository stores user-visible reply drafts.
type DraftRepository interface {
	List(ctx context.Context) ([]*domain.Draft, error)
	Create(ctx context.Context, draft *domain.Draft) error
	Update(ctx context.Context, id int64, subject, body string) (*domain.Draft, error)
	Delete(ctx context.Context, id int64) error
}
