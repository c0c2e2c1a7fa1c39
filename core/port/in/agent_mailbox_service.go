package in

import (
	"context"

	"agent_server/core/domain"
)

// EmailListResponse is the paginated email listing.
type EmailListResponse struct {
	Emails []*domain.Email `json:"emails"`
	Total  int             `json:"total"`
}

// SyncResult reports how many emails a sync run inserted.
type SyncResult struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
}

// CreateDraftRequest creates a user-authored draft.
type CreateDraftRequest struct {
	EmailID string `json:"email_id"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// UpdateDraftRequest edits an existing draft.
type UpdateDraftRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// MailboxService exposes read access to the mailbox plus draft CRUD and
// seed-inbox sync. It performs no enrichment of its own.
type MailboxService interface {
	ListEmails(ctx context.Context, filter *domain.EmailFilter) (*EmailListResponse, error)
	GetEmail(ctx context.Context, id string) (*domain.Email, error)
	DeleteEmail(ctx context.Context, id string) error

	// SyncSeed loads the bundled seed inbox, inserting only unseen ids.
	SyncSeed(ctx context.Context) (*SyncResult, error)

	ListDrafts(ctx context.Context) ([]*domain.Draft, error)
	CreateDraft(ctx context.Context, req *CreateDraftRequest) (*domain.Draft, error)
	UpdateDraft(ctx context.Context, id int64, req *UpdateDraftRequest) (*domain.Draft, error)
	DeleteDraft(ctx context.Context, id int64) error
}

// PromptService exposes prompt-template reads and edits.
type PromptService interface {
	GetPrompt(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error)
	UpdatePrompt(ctx context.Context, task domain.TaskType, content string) (*domain.PromptTemplate, error)
	ResetPrompt(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error)
}
