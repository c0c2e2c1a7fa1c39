package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"agent_server/core/domain"
	"agent_server/core/port/in"
	"agent_server/pkg/apperr"

	"github.com/rs/zerolog"
)

type listOnlyRepo struct {
	emails     []*domain.Email
	lastFilter *domain.EmailFilter
}

func (r *listOnlyRepo) GetEmail(_ context.Context, id string) (*domain.Email, error) {
	return nil, apperr.NotFound("email")
}

func (r *listOnlyRepo) ListEmails(_ context.Context, filter *domain.EmailFilter) ([]*domain.Email, error) {
	r.lastFilter = filter

	out := make([]*domain.Email, 0, len(r.emails))
	for _, e := range r.emails {
		if filter.Category != nil && (e.Category == nil || *e.Category != *filter.Category) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *listOnlyRepo) SaveEmail(_ context.Context, _ *domain.Email) (bool, error) { return false, nil }
func (r *listOnlyRepo) DeleteEmail(_ context.Context, _ string) error              { return nil }
func (r *listOnlyRepo) ReplaceCategory(_ context.Context, _ string, _ domain.Category, _ int) error {
	return nil
}
func (r *listOnlyRepo) ReplaceActionItems(_ context.Context, _ string, _ []domain.ActionItem, _ bool, _ int) error {
	return nil
}
func (r *listOnlyRepo) ReplaceDraft(_ context.Context, _ string, _ string, _ int) error { return nil }
func (r *listOnlyRepo) MarkTaskFailed(_ context.Context, _ string, _ domain.TaskType) error {
	return nil
}

type capturingCompleter struct {
	instruction string
	content     string
	answer      string
}

func (c *capturingCompleter) Complete(_ context.Context, instruction, content string) (string, error) {
	c.instruction = instruction
	c.content = content
	return c.answer, nil
}

func chatEmail(id string, category domain.Category, sender, subject string) *domain.Email {
	return &domain.Email{
		ID:         id,
		Sender:     sender,
		Subject:    subject,
		Category:   &category,
		ReceivedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestAskBuildsInboxContext(t *testing.T) {
	repo := &listOnlyRepo{emails: []*domain.Email{
		chatEmail("em-1", domain.CategoryWork, "boss@corp.com", "Q3 planning"),
		chatEmail("em-2", domain.CategoryFinance, "billing@saas.io", "Invoice #441"),
	}}
	completer := &capturingCompleter{answer: "You have one invoice due."}
	svc := NewService(repo, completer, 20, zerolog.Nop())

	resp, err := svc.Ask(context.Background(), &in.AskRequest{Question: "What bills do I have?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Answer != "You have one invoice due." {
		t.Errorf("unexpected answer %q", resp.Answer)
	}
	if resp.ContextEmails != 2 {
		t.Errorf("expected 2 context emails, got %d", resp.ContextEmails)
	}
	if !strings.Contains(completer.instruction, "What bills do I have?") {
		t.Errorf("question must drive the instruction, got %q", completer.instruction)
	}
	for _, want := range []string{
		"- [Work] From: boss@corp.com, Subject: Q3 planning",
		"- [Finance] From: billing@saas.io, Subject: Invoice #441",
	} {
		if !strings.Contains(completer.content, want) {
			t.Errorf("content missing %q:\n%s", want, completer.content)
		}
	}
}

func TestAskScopeIsExplicit(t *testing.T) {
	repo := &listOnlyRepo{emails: []*domain.Email{
		chatEmail("em-1", domain.CategoryWork, "boss@corp.com", "Q3 planning"),
		chatEmail("em-2", domain.CategoryFinance, "billing@saas.io", "Invoice #441"),
	}}
	completer := &capturingCompleter{answer: "ok"}
	svc := NewService(repo, completer, 20, zerolog.Nop())

	finance := domain.CategoryFinance
	resp, err := svc.Ask(context.Background(), &in.AskRequest{
		Question: "Summarize these.",
		Category: &finance,
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastFilter.Category == nil || *repo.lastFilter.Category != domain.CategoryFinance {
		t.Error("the caller's category filter must reach the repository")
	}
	if repo.lastFilter.Limit != 5 {
		t.Errorf("expected limit 5, got %d", repo.lastFilter.Limit)
	}
	if resp.ContextEmails != 1 {
		t.Errorf("expected 1 scoped email, got %d", resp.ContextEmails)
	}
	if strings.Contains(completer.content, "Q3 planning") {
		t.Error("out-of-scope email leaked into the context")
	}
}

func TestAskEmptyScope(t *testing.T) {
	repo := &listOnlyRepo{}
	completer := &capturingCompleter{answer: "Your inbox is empty."}
	svc := NewService(repo, completer, 20, zerolog.Nop())

	resp, err := svc.Ask(context.Background(), &in.AskRequest{Question: "Anything new?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ContextEmails != 0 {
		t.Errorf("expected 0 context emails, got %d", resp.ContextEmails)
	}
	if !strings.Contains(completer.content, "contains no emails") {
		t.Error("expected the empty-scope marker in the content")
	}
}

func TestAskRequiresQuestion(t *testing.T) {
	svc := NewService(&listOnlyRepo{}, &capturingCompleter{}, 20, zerolog.Nop())

	_, err := svc.Ask(context.Background(), &in.AskRequest{Question: "   "})
	if !apperr.IsCode(err, apperr.CodeMissingField) {
		t.Errorf("expected missing-field, got %v", err)
	}
}

func TestAskDefaultLimit(t *testing.T) {
	repo := &listOnlyRepo{}
	svc := NewService(repo, &capturingCompleter{answer: "ok"}, 20, zerolog.Nop())

	if _, err := svc.Ask(context.Background(), &in.AskRequest{Question: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", repo.lastFilter.Limit)
	}
}
