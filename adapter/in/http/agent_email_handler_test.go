package http

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"agent_server/adapter/in/worker"
	"agent_server/core/domain"
	"agent_server/core/port/in"
	"agent_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// =============================================================================
// Fakes
// =============================================================================

// fakeMailbox serves a fixed email slice and mirrors the store's paging
// rules, including the per-page cap.
type fakeMailbox struct {
	emails []*domain.Email
}

func (f *fakeMailbox) ListEmails(_ context.Context, filter *domain.EmailFilter) (*in.EmailListResponse, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	matched := make([]*domain.Email, 0)
	for _, e := range f.emails {
		if filter.Pending != nil && e.PendingEnrichment() != *filter.Pending {
			continue
		}
		matched = append(matched, e)
	}

	total := len(matched)
	if filter.Offset >= total {
		return &in.EmailListResponse{Emails: []*domain.Email{}, Total: total}, nil
	}
	end := filter.Offset + limit
	if end > total {
		end = total
	}
	return &in.EmailListResponse{Emails: matched[filter.Offset:end], Total: total}, nil
}

func (f *fakeMailbox) GetEmail(_ context.Context, id string) (*domain.Email, error) {
	for _, e := range f.emails {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, apperr.NotFound("email")
}

func (f *fakeMailbox) DeleteEmail(context.Context, string) error { return nil }

func (f *fakeMailbox) SyncSeed(context.Context) (*in.SyncResult, error) {
	return &in.SyncResult{}, nil
}

func (f *fakeMailbox) ListDrafts(context.Context) ([]*domain.Draft, error) { return nil, nil }

func (f *fakeMailbox) CreateDraft(context.Context, *in.CreateDraftRequest) (*domain.Draft, error) {
	return nil, nil
}

func (f *fakeMailbox) UpdateDraft(context.Context, int64, *in.UpdateDraftRequest) (*domain.Draft, error) {
	return nil, nil
}

func (f *fakeMailbox) DeleteDraft(context.Context, int64) error { return nil }

type noopEnricher struct{}

func (noopEnricher) EnrichTask(_ context.Context, _ string, task domain.TaskType) (*in.TaskResult, error) {
	return &in.TaskResult{Task: task, Status: domain.EnrichmentDone}, nil
}

func (noopEnricher) EnrichEmail(context.Context, string) ([]*in.TaskResult, error) {
	return nil, nil
}

// =============================================================================
// EnrichAll
// =============================================================================

func TestEnrichAllPagesPastStoreCap(t *testing.T) {
	mb := &fakeMailbox{}
	for i := 0; i < 250; i++ {
		mb.emails = append(mb.emails, &domain.Email{
			ID:             fmt.Sprintf("em-%03d", i),
			CategoryStatus: domain.EnrichmentPending,
			ActionsStatus:  domain.EnrichmentPending,
			DraftStatus:    domain.EnrichmentPending,
		})
	}

	pool := worker.NewEnrichPool(noopEnricher{}, &worker.PoolConfig{Workers: 2, QueueSize: 1024}, zerolog.Nop())
	if err := pool.Start(); err != nil {
		t.Fatalf("starting pool: %v", err)
	}
	defer pool.Stop()

	app := fiber.New()
	NewEmailHandler(mb, noopEnricher{}, pool).Register(app.Group("/api/v1"))

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/emails/enrich-all", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Emails int `json:"emails"`
			Queued int `json:"queued"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if body.Data.Emails != 250 {
		t.Errorf("expected all 250 pending emails seen, got %d", body.Data.Emails)
	}
	if body.Data.Queued != 750 {
		t.Errorf("expected 750 jobs queued, got %d", body.Data.Queued)
	}
}

func TestEnrichAllSkipsCompletedTasks(t *testing.T) {
	mb := &fakeMailbox{emails: []*domain.Email{{
		ID:             "em-1",
		CategoryStatus: domain.EnrichmentDone,
		ActionsStatus:  domain.EnrichmentPending,
		DraftStatus:    domain.EnrichmentFailed,
	}}}

	pool := worker.NewEnrichPool(noopEnricher{}, &worker.PoolConfig{Workers: 1, QueueSize: 16}, zerolog.Nop())
	if err := pool.Start(); err != nil {
		t.Fatalf("starting pool: %v", err)
	}
	defer pool.Stop()

	app := fiber.New()
	NewEmailHandler(mb, noopEnricher{}, pool).Register(app.Group("/api/v1"))

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/emails/enrich-all", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Data struct {
			Emails int `json:"emails"`
			Queued int `json:"queued"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if body.Data.Emails != 1 {
		t.Errorf("expected 1 pending email, got %d", body.Data.Emails)
	}
	if body.Data.Queued != 2 {
		t.Errorf("expected the two unfinished tasks queued, got %d", body.Data.Queued)
	}
}
