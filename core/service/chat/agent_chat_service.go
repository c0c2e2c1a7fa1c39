package chat

import (
	"context"
	"fmt"
	"strings"

	"agent_server/core/domain"
	"agent_server/core/port/in"
	"agent_server/core/port/out"
	"agent_server/pkg/apperr"

	"github.com/rs/zerolog"
)

const askFrame = `You are an email productivity assistant. Answer the following question about the user's inbox, using the inbox metadata provided as content. Be concise.

QUESTION: %s`

// Service implements in.ChatService. Each question is one completion
// call: the instruction carries the user's question, the content is the
// summarized inbox scope. The scope is chosen by an explicit filter
// supplied by the caller.
type Service struct {
	mailboxRepo  out.MailboxRepository
	completer    out.Completer
	defaultLimit int
	log          zerolog.Logger
}

// NewService creates a new chat service.
func NewService(mailboxRepo out.MailboxRepository, completer out.Completer, defaultLimit int, log zerolog.Logger) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &Service{
		mailboxRepo:  mailboxRepo,
		completer:    completer,
		defaultLimit: defaultLimit,
		log:          log.With().Str("component", "chat_service").Logger(),
	}
}

func (s *Service) Ask(ctx context.Context, req *in.AskRequest) (*in.AskResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, apperr.MissingField("question")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	emails, err := s.mailboxRepo.ListEmails(ctx, &domain.EmailFilter{
		Category: req.Category,
		Pending:  req.Pending,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	instruction := fmt.Sprintf(askFrame, strings.TrimSpace(req.Question))

	answer, err := s.completer.Complete(ctx, instruction, summarizeInbox(emails))
	if err != nil {
		return nil, err
	}

	return &in.AskResponse{
		Answer:        answer,
		ContextEmails: len(emails),
	}, nil
}

// summarizeInbox renders one metadata line per email for the model
// context. Bodies are left out; the question is answered from headers
// and derived categories.
func summarizeInbox(emails []*domain.Email) string {
	if len(emails) == 0 {
		return "(the selected scope contains no emails)"
	}

	var b strings.Builder
	for _, e := range emails {
		category := domain.CategoryUncategorized
		if e.Category != nil {
			category = *e.Category
		}
		fmt.Fprintf(&b, "- [%s] From: %s, Subject: %s, Received: %s\n",
			category, e.Sender, e.Subject, e.ReceivedAt.Format("2006-01-02"))
	}
	return b.String()
}

// Ensure Service implements in.ChatService
var _ in.ChatService = (*Service)(nil)
