package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"agent_server/core/domain"
	"agent_server/core/port/out"
	"agent_server/pkg/apperr"

	"github.com/jmoiron/sqlx"
)

// MailboxAdapter implements out.MailboxRepository using SQLite.
type MailboxAdapter struct {
	db *sqlx.DB
}

// NewMailboxAdapter creates a new MailboxAdapter.
func NewMailboxAdapter(db *sqlx.DB) *MailboxAdapter {
	return &MailboxAdapter{db: db}
}

// emailRow represents the database row for emails.
type emailRow struct {
	ID         string    `db:"id"`
	Sender     string    `db:"sender"`
	Subject    string    `db:"subject"`
	Body       string    `db:"body"`
	ReceivedAt time.Time `db:"received_at"`
	IsRead     bool      `db:"is_read"`

	Category       sql.NullString `db:"category"`
	CategoryStatus string         `db:"category_status"`
	CategoryRev    int            `db:"category_prompt_rev"`

	ActionItems   []byte `db:"action_items"`
	ParseFailed   bool   `db:"parse_failed"`
	ActionsStatus string `db:"actions_status"`
	ActionsRev    int    `db:"actions_prompt_rev"`

	DraftReply  sql.NullString `db:"draft_reply"`
	DraftStatus string         `db:"draft_status"`
	DraftRev    int            `db:"draft_prompt_rev"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *emailRow) toEntity() *domain.Email {
	entity := &domain.Email{
		ID:             r.ID,
		Sender:         r.Sender,
		Subject:        r.Subject,
		Body:           r.Body,
		ReceivedAt:     r.ReceivedAt,
		IsRead:         r.IsRead,
		CategoryStatus: domain.EnrichmentStatus(r.CategoryStatus),
		CategoryRev:    r.CategoryRev,
		ActionItems:    []domain.ActionItem{},
		ParseFailed:    r.ParseFailed,
		ActionsStatus:  domain.EnrichmentStatus(r.ActionsStatus),
		ActionsRev:     r.ActionsRev,
		DraftStatus:    domain.EnrichmentStatus(r.DraftStatus),
		DraftRev:       r.DraftRev,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}

	if r.Category.Valid {
		category := domain.Category(r.Category.String)
		entity.Category = &category
	}
	if r.DraftReply.Valid {
		draft := r.DraftReply.String
		entity.DraftReply = &draft
	}

	if len(r.ActionItems) > 0 {
		var items []domain.ActionItem
		if err := json.Unmarshal(r.ActionItems, &items); err == nil && items != nil {
			entity.ActionItems = items
		}
	}

	return entity
}

// GetEmail retrieves an email by id.
func (a *MailboxAdapter) GetEmail(ctx context.Context, id string) (*domain.Email, error) {
	query := `SELECT * FROM emails WHERE id = ?`

	var row emailRow
	err := a.db.QueryRowxContext(ctx, query, id).StructScan(&row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("email")
		}
		return nil, apperr.DatabaseError("get email", err)
	}

	return row.toEntity(), nil
}

// ListEmails lists emails matching the filter, newest first.
func (a *MailboxAdapter) ListEmails(ctx context.Context, filter *domain.EmailFilter) ([]*domain.Email, error) {
	if filter == nil {
		filter = &domain.EmailFilter{}
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}

	query := `SELECT * FROM emails WHERE 1=1`
	args := []interface{}{}

	if filter.Category != nil {
		query += ` AND category = ?`
		args = append(args, string(*filter.Category))
	}

	if filter.Pending != nil {
		if *filter.Pending {
			query += ` AND (category_status != 'done' OR actions_status != 'done' OR draft_status != 'done')`
		} else {
			query += ` AND category_status = 'done' AND actions_status = 'done' AND draft_status = 'done'`
		}
	}

	query += ` ORDER BY received_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := a.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.DatabaseError("list emails", err)
	}
	defer rows.Close()

	var emails []*domain.Email
	for rows.Next() {
		var row emailRow
		if err := rows.StructScan(&row); err != nil {
			return nil, apperr.DatabaseError("scan email", err)
		}
		emails = append(emails, row.toEntity())
	}

	return emails, nil
}

// SaveEmail inserts the email if its id is absent. Existing rows keep
// their derived state untouched.
func (a *MailboxAdapter) SaveEmail(ctx context.Context, email *domain.Email) (bool, error) {
	query := `
		INSERT INTO emails (id, sender, subject, body, received_at, is_read)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	result, err := a.db.ExecContext(ctx, query,
		email.ID,
		email.Sender,
		email.Subject,
		email.Body,
		email.ReceivedAt,
		email.IsRead,
	)
	if err != nil {
		return false, apperr.DatabaseError("save email", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteEmail removes an email; drafts cascade via the foreign key.
func (a *MailboxAdapter) DeleteEmail(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM emails WHERE id = ?`, id)
	if err != nil {
		return apperr.DatabaseError("delete email", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperr.NotFound("email")
	}
	return nil
}

// ReplaceCategory replaces the category field in one atomic update.
func (a *MailboxAdapter) ReplaceCategory(ctx context.Context, id string, category domain.Category, promptRev int) error {
	query := `
		UPDATE emails
		SET category = ?, category_status = 'done', category_prompt_rev = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := a.db.ExecContext(ctx, query, string(category), promptRev, id)
	if err != nil {
		return apperr.DatabaseError("replace category", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperr.NotFound("email")
	}
	return nil
}

// ReplaceActionItems replaces the full action-item set. The previous set
// is discarded wholesale so a malformed extraction can never leave a
// half-merged state.
func (a *MailboxAdapter) ReplaceActionItems(ctx context.Context, id string, items []domain.ActionItem, parseFailed bool, promptRev int) error {
	if items == nil {
		items = []domain.ActionItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return apperr.DatabaseError("marshal action items", err)
	}

	query := `
		UPDATE emails
		SET action_items = ?, parse_failed = ?, actions_status = 'done', actions_prompt_rev = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := a.db.ExecContext(ctx, query, itemsJSON, parseFailed, promptRev, id)
	if err != nil {
		return apperr.DatabaseError("replace action items", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperr.NotFound("email")
	}
	return nil
}

// ReplaceDraft replaces the latest generated draft reply.
func (a *MailboxAdapter) ReplaceDraft(ctx context.Context, id string, draft string, promptRev int) error {
	query := `
		UPDATE emails
		SET draft_reply = ?, draft_status = 'done', draft_prompt_rev = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := a.db.ExecContext(ctx, query, draft, promptRev, id)
	if err != nil {
		return apperr.DatabaseError("replace draft", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperr.NotFound("email")
	}
	return nil
}

// MarkTaskFailed sets the task status to failed, leaving the previously
// stored derived value untouched.
func (a *MailboxAdapter) MarkTaskFailed(ctx context.Context, id string, task domain.TaskType) error {
	column, err := statusColumn(task)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE emails SET %s = 'failed', updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		column,
	)

	result, err := a.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperr.DatabaseError("mark task failed", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperr.NotFound("email")
	}
	return nil
}

// statusColumn maps a task to its status column. Column names come from
// this fixed map, never from caller input.
func statusColumn(task domain.TaskType) (string, error) {
	switch task {
	case domain.TaskCategorize:
		return "category_status", nil
	case domain.TaskExtractActions:
		return "actions_status", nil
	case domain.TaskDraftReply:
		return "draft_status", nil
	}
	return "", apperr.BadRequest(fmt.Sprintf("unknown task: %s", task))
}

// Ensure MailboxAdapter implements out.MailboxRepository
var _ out.MailboxRepository = (*MailboxAdapter)(nil)
