package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agent_server/core/domain"
	"agent_server/core/port/in"
	"agent_server/core/port/out"
	"agent_server/pkg/apperr"

	"github.com/rs/zerolog"
)

// Config holds pipeline tuning knobs.
type Config struct {
	MaxAttempts  int           // total tries per task, including the first
	RetryBackoff time.Duration // base delay, doubled per retry
}

// DefaultConfig returns the default retry policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		RetryBackoff: 500 * time.Millisecond,
	}
}

// Service implements in.EnrichmentService. It orchestrates, per email,
// the three enrichment tasks: read the current prompt template, call the
// completer, parse the output, commit the result as a full single-field
// replace. The store is never locked across the external call.
type Service struct {
	mailboxRepo out.MailboxRepository
	promptRepo  out.PromptRepository
	draftRepo   out.DraftRepository
	completer   out.Completer
	cfg         Config
	locks       *taskLocks
	log         zerolog.Logger
}

// NewService creates a new enrichment service.
func NewService(
	mailboxRepo out.MailboxRepository,
	promptRepo out.PromptRepository,
	draftRepo out.DraftRepository,
	completer out.Completer,
	cfg Config,
	log zerolog.Logger,
) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultConfig().RetryBackoff
	}

	return &Service{
		mailboxRepo: mailboxRepo,
		promptRepo:  promptRepo,
		draftRepo:   draftRepo,
		completer:   completer,
		cfg:         cfg,
		locks:       newTaskLocks(),
		log:         log.With().Str("component", "enrich_service").Logger(),
	}
}

// EnrichTask runs a single task for one email.
func (s *Service) EnrichTask(ctx context.Context, emailID string, task domain.TaskType) (*in.TaskResult, error) {
	if !domain.IsValidTask(string(task)) {
		return nil, apperr.BadRequest(fmt.Sprintf("unknown task: %s", task))
	}

	release := s.locks.acquire(emailID, string(task))
	defer release()

	email, err := s.mailboxRepo.GetEmail(ctx, emailID)
	if err != nil {
		return nil, err
	}

	prompt, err := s.promptRepo.Get(ctx, task)
	if err != nil {
		return nil, err
	}

	instruction := buildInstruction(task, prompt.Content)
	content := buildContent(email)

	output, err := s.completeWithRetry(ctx, emailID, task, instruction, content)
	if err != nil {
		// A caller-initiated cancel aborts without committing anything,
		// including the failure marker.
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if markErr := s.mailboxRepo.MarkTaskFailed(ctx, emailID, task); markErr != nil {
			s.log.Error().Err(markErr).Str("email_id", emailID).Str("task", string(task)).
				Msg("failed to mark task failed")
		}
		return failedResult(task, err), apperr.EnrichmentFailed(string(task), err)
	}

	return s.commit(ctx, email, task, prompt.Revision, output)
}

// EnrichEmail runs all three tasks for one email. The tasks are
// independent; a failure in one is reported in its result and does not
// stop the others.
func (s *Service) EnrichEmail(ctx context.Context, emailID string) ([]*in.TaskResult, error) {
	if _, err := s.mailboxRepo.GetEmail(ctx, emailID); err != nil {
		return nil, err
	}

	results := make([]*in.TaskResult, 0, len(domain.AllTasks()))
	for _, task := range domain.AllTasks() {
		result, err := s.EnrichTask(ctx, emailID, task)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			if result == nil {
				result = failedResult(task, err)
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// completeWithRetry calls the completer, retrying transient failures
// with exponential backoff up to the configured attempt bound.
func (s *Service) completeWithRetry(ctx context.Context, emailID string, task domain.TaskType, instruction, content string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		output, err := s.completer.Complete(ctx, instruction, content)
		if err == nil {
			return output, nil
		}
		lastErr = err

		if !apperr.IsTransient(err) {
			return "", err
		}
		if attempt == s.cfg.MaxAttempts {
			break
		}

		backoff := s.cfg.RetryBackoff << (attempt - 1)
		s.log.Warn().Err(err).
			Str("email_id", emailID).
			Str("task", string(task)).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("transient completion failure, retrying")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	return "", lastErr
}

// commit parses the model output per task and writes the derived field.
func (s *Service) commit(ctx context.Context, email *domain.Email, task domain.TaskType, promptRev int, output string) (*in.TaskResult, error) {
	result := &in.TaskResult{Task: task, Status: domain.EnrichmentDone}

	switch task {
	case domain.TaskCategorize:
		// Out-of-set output degrades to Uncategorized, never an error.
		category := domain.NormalizeCategory(stripFences(output))
		if err := s.mailboxRepo.ReplaceCategory(ctx, email.ID, category, promptRev); err != nil {
			return nil, err
		}
		result.Category = &category

	case domain.TaskExtractActions:
		items, parseFailed := parseActionItems(output)
		if parseFailed {
			s.log.Warn().Str("email_id", email.ID).Msg("unparsable action-item output, storing empty set")
		}
		if err := s.mailboxRepo.ReplaceActionItems(ctx, email.ID, items, parseFailed, promptRev); err != nil {
			return nil, err
		}
		result.ActionItems = items
		result.ParseFailed = parseFailed

	case domain.TaskDraftReply:
		draft := strings.TrimSpace(output)
		if draft == "" {
			err := apperr.ParseFailed(string(task), errors.New("empty draft output"))
			if markErr := s.mailboxRepo.MarkTaskFailed(ctx, email.ID, task); markErr != nil {
				return nil, markErr
			}
			return failedResult(task, err), apperr.EnrichmentFailed(string(task), err)
		}
		if err := s.mailboxRepo.ReplaceDraft(ctx, email.ID, draft, promptRev); err != nil {
			return nil, err
		}
		// Keep a user-visible draft record alongside the derived field.
		if s.draftRepo != nil {
			record := &domain.Draft{
				EmailID: email.ID,
				Subject: "Re: " + email.Subject,
				Body:    draft,
			}
			if err := s.draftRepo.Create(ctx, record); err != nil {
				s.log.Error().Err(err).Str("email_id", email.ID).Msg("failed to save draft record")
			}
		}
		result.Draft = draft
	}

	return result, nil
}

func failedResult(task domain.TaskType, err error) *in.TaskResult {
	return &in.TaskResult{
		Task:   task,
		Status: domain.EnrichmentFailed,
		Error:  err.Error(),
	}
}

// Ensure Service implements in.EnrichmentService
var _ in.EnrichmentService = (*Service)(nil)
