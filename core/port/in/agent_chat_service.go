package in

import (
	"context"

	"agent_server/core/domain"
)

// AskRequest is a free-form question about the inbox. The scope of
// emails summarized into the question context is an explicit filter,
// never an implicit default.
type AskRequest struct {
	Question string           `json:"question"`
	Category *domain.Category `json:"category,omitempty"`
	Pending  *bool            `json:"pending,omitempty"`
	Limit    int              `json:"limit,omitempty"`
}

// AskResponse carries the model's answer plus how many emails were
// summarized into the context.
type AskResponse struct {
	Answer        string `json:"answer"`
	ContextEmails int    `json:"context_emails"`
}

// ChatService answers natural-language questions about the mailbox via
// one completion call per question.
type ChatService interface {
	Ask(ctx context.Context, req *AskRequest) (*AskResponse, error)
}
