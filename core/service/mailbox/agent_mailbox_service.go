package mailbox

import (
	"context"
	"os"
	"time"

	"github.com/goccy/go-json"

	"agent_server/core/domain"
	"agent_server/core/port/in"
	"agent_server/core/port/out"
	"agent_server/pkg/apperr"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service implements in.MailboxService. It routes reads and draft edits
// to the repositories and performs no enrichment of its own.
type Service struct {
	mailboxRepo out.MailboxRepository
	draftRepo   out.DraftRepository
	seedPath    string
	log         zerolog.Logger
}

// NewService creates a new mailbox service.
func NewService(mailboxRepo out.MailboxRepository, draftRepo out.DraftRepository, seedPath string, log zerolog.Logger) *Service {
	return &Service{
		mailboxRepo: mailboxRepo,
		draftRepo:   draftRepo,
		seedPath:    seedPath,
		log:         log.With().Str("component", "mailbox_service").Logger(),
	}
}

func (s *Service) ListEmails(ctx context.Context, filter *domain.EmailFilter) (*in.EmailListResponse, error) {
	emails, err := s.mailboxRepo.ListEmails(ctx, filter)
	if err != nil {
		return nil, err
	}
	if emails == nil {
		emails = []*domain.Email{}
	}
	return &in.EmailListResponse{
		Emails: emails,
		Total:  len(emails),
	}, nil
}

func (s *Service) GetEmail(ctx context.Context, id string) (*domain.Email, error) {
	return s.mailboxRepo.GetEmail(ctx, id)
}

func (s *Service) DeleteEmail(ctx context.Context, id string) error {
	return s.mailboxRepo.DeleteEmail(ctx, id)
}

// seedEmail is the JSON shape of one seed inbox entry.
type seedEmail struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
	IsRead     bool      `json:"is_read"`
}

// SyncSeed loads the seed inbox file, inserting only ids not yet stored
// so re-syncs never clobber enriched state. When no seed file exists the
// built-in sample inbox is used.
func (s *Service) SyncSeed(ctx context.Context) (*in.SyncResult, error) {
	seeds, err := s.loadSeeds()
	if err != nil {
		return nil, err
	}

	result := &in.SyncResult{Fetched: len(seeds)}
	for _, seed := range seeds {
		id := seed.ID
		if id == "" {
			id = uuid.NewString()
		}
		inserted, err := s.mailboxRepo.SaveEmail(ctx, &domain.Email{
			ID:         id,
			Sender:     seed.Sender,
			Subject:    seed.Subject,
			Body:       seed.Body,
			ReceivedAt: seed.ReceivedAt,
			IsRead:     seed.IsRead,
		})
		if err != nil {
			return nil, err
		}
		if inserted {
			result.Inserted++
		}
	}

	s.log.Info().Int("fetched", result.Fetched).Int("inserted", result.Inserted).Msg("seed inbox synced")
	return result, nil
}

func (s *Service) loadSeeds() ([]seedEmail, error) {
	if s.seedPath != "" {
		data, err := os.ReadFile(s.seedPath)
		if err == nil {
			var seeds []seedEmail
			if err := json.Unmarshal(data, &seeds); err != nil {
				return nil, apperr.BadRequest("seed inbox file is not valid JSON")
			}
			return seeds, nil
		}
		if !os.IsNotExist(err) {
			return nil, apperr.Internal("failed to read seed inbox file")
		}
	}
	return builtinSeeds(), nil
}

func (s *Service) ListDrafts(ctx context.Context) ([]*domain.Draft, error) {
	drafts, err := s.draftRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if drafts == nil {
		drafts = []*domain.Draft{}
	}
	return drafts, nil
}

func (s *Service) CreateDraft(ctx context.Context, req *in.CreateDraftRequest) (*domain.Draft, error) {
	if req.EmailID == "" {
		return nil, apperr.MissingField("email_id")
	}
	if req.Body == "" {
		return nil, apperr.MissingField("body")
	}

	// The parent email must exist; drafts cascade with it.
	if _, err := s.mailboxRepo.GetEmail(ctx, req.EmailID); err != nil {
		return nil, err
	}

	draft := &domain.Draft{
		EmailID: req.EmailID,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *Service) UpdateDraft(ctx context.Context, id int64, req *in.UpdateDraftRequest) (*domain.Draft, error) {
	if req.Body == "" {
		return nil, apperr.MissingField("body")
	}
	return s.draftRepo.Update(ctx, id, req.Subject, req.Body)
}

func (s *Service) DeleteDraft(ctx context.Context, id int64) error {
	return s.draftRepo.Delete(ctx, id)
}

// Ensure Service implements in.MailboxService
var _ in.MailboxService = (*Service)(nil)
