package service

import (
	"context"
	"fmt"
	"strings"

	"agent_server/core/domain"
	"agent_server/core/port/in"
	"agent_server/core/port/out"
	"agent_server/pkg/apperr"
)

// PromptService implements in.PromptService. Prompt templates are
// process-wide shared state: defaults exist at startup, edits overwrite
// in place, and a template is never deleted, only reset.
type PromptService struct {
	promptRepo out.PromptRepository
}

// NewPromptService creates a new PromptService.
func NewPromptService(promptRepo out.PromptRepository) *PromptService {
	return &PromptService{promptRepo: promptRepo}
}

func (s *PromptService) GetPrompt(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error) {
	if err := validateTask(task); err != nil {
		return nil, err
	}
	return s.promptRepo.Get(ctx, task)
}

func (s *PromptService) UpdatePrompt(ctx context.Context, task domain.TaskType, content string) (*domain.PromptTemplate, error) {
	if err := validateTask(task); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.MissingField("content")
	}
	return s.promptRepo.Set(ctx, task, content)
}

func (s *PromptService) ResetPrompt(ctx context.Context, task domain.TaskType) (*domain.PromptTemplate, error) {
	if err := validateTask(task); err != nil {
		return nil, err
	}
	return s.promptRepo.Reset(ctx, task)
}

func validateTask(task domain.TaskType) error {
	if !domain.IsValidTask(string(task)) {
		return apperr.BadRequest(fmt.Sprintf("unknown task: %s", task))
	}
	return nil
}

// Ensure PromptService implements in.PromptService
var _ in.PromptService = (*PromptService)(nil)
