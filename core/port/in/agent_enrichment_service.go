package in

import (
	"context"

	"agent_server/core/domain"
)

// TaskResult is the outcome of one enrichment task run.
type TaskResult struct {
	Task        domain.TaskType         `json:"task"`
	Status      domain.EnrichmentStatus `json:"status"`
	Category    *domain.Category        `json:"category,omitempty"`
	ActionItems []domain.ActionItem     `json:"action_items,omitempty"`
	ParseFailed bool                    `json:"parse_failed,omitempty"`
	Draft       string                  `json:"draft,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// EnrichmentService runs enrichment tasks for emails.
type EnrichmentService interface {
	// EnrichTask runs a single task for one email. Parse failures are
	// absorbed into safe defaults; only retry-exhausted or permanent
	// client failures return an error, after the task's status has been
	// marked failed.
	EnrichTask(ctx context.Context, emailID string, task domain.TaskType) (*TaskResult, error)

	// EnrichEmail runs all three tasks for one email. Task failures are
	// reported per task, not as an overall error.
	EnrichEmail(ctx context.Context, emailID string) ([]*TaskResult, error)
}
