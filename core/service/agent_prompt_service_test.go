package service

import (
	"context"
	"sync"
	"testing"

	"agent_server/core/domain"
	"agent_server/pkg/apperr"
)

type memPromptRepo struct {
	mu        sync.Mutex
	templates map[domain.TaskType]*domain.PromptTemplate
}

func newMemPromptRepo() *memPromptRepo {
	repo := &memPromptRepo{templates: make(map[domain.TaskType]*domain.PromptTemplate)}
	for _, task := range domain.AllTasks() {
		repo.templates[task] = &domain.PromptTemplate{
			Task:     task,
			Content:  domain.DefaultPromptContent(task),
			Revision: 1,
		}
	}
	return repo
}

func (r *memPromptRepo) Get(_ context.Context, task domain.TaskType) (*domain.PromptTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[task]
	if !ok {
		return nil, apperr.NotFound("prompt template")
	}
	return t, nil
}

func (r *memPromptRepo) Set(_ context.Context, task domain.TaskType, content string) (*domain.PromptTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.templates[task]
	t.Content = content
	t.Revision++
	return t, nil
}

func (r *memPromptRepo) Reset(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error) {
	return r.Set(ctx, task, domain.DefaultPromptContent(task))
}

func (r *memPromptRepo) SeedDefaults(_ context.Context) error { return nil }

func TestUpdatePrompt(t *testing.T) {
	svc := NewPromptService(newMemPromptRepo())
	ctx := context.Background()

	updated, err := svc.UpdatePrompt(ctx, domain.TaskCategorize, "Treat newsletters as Promotions.")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Revision != 2 {
		t.Errorf("expected revision bump, got %d", updated.Revision)
	}

	got, err := svc.GetPrompt(ctx, domain.TaskCategorize)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "Treat newsletters as Promotions." {
		t.Errorf("unexpected content %q", got.Content)
	}
}

func TestUpdatePromptValidation(t *testing.T) {
	svc := NewPromptService(newMemPromptRepo())
	ctx := context.Background()

	if _, err := svc.UpdatePrompt(ctx, domain.TaskType("summarize"), "x"); !apperr.IsCode(err, apperr.CodeBadRequest) {
		t.Errorf("expected bad-request for unknown task, got %v", err)
	}
	if _, err := svc.UpdatePrompt(ctx, domain.TaskCategorize, "  \n "); !apperr.IsCode(err, apperr.CodeMissingField) {
		t.Errorf("expected missing-field for blank content, got %v", err)
	}
	if _, err := svc.GetPrompt(ctx, domain.TaskType("")); !apperr.IsCode(err, apperr.CodeBadRequest) {
		t.Errorf("expected bad-request for empty task, got %v", err)
	}
}

func TestResetPrompt(t *testing.T) {
	svc := NewPromptService(newMemPromptRepo())
	ctx := context.Background()

	if _, err := svc.UpdatePrompt(ctx, domain.TaskDraftReply, "Reply tersely."); err != nil {
		t.Fatalf("update: %v", err)
	}

	reset, err := svc.ResetPrompt(ctx, domain.TaskDraftReply)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.Content != domain.DefaultPromptContent(domain.TaskDraftReply) {
		t.Error("expected default content restored")
	}
}
