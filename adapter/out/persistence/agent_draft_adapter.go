package persistence

import (
	"context"
	"database/sql"
	"time"

	"agent_server/core/domain"
	"agent_server/core/port/out"
	"agent_server/pkg/apperr"

	"github.com/jmoiron/sqlx"
)

// DraftAdapter implements out.DraftRepository using SQLite.
type DraftAdapter struct {
	db *sqlx.DB
}

// NewDraftAdapter creates a new DraftAdapter.
func NewDraftAdapter(db *sqlx.DB) *DraftAdapter {
	return &DraftAdapter{db: db}
}

// draftRow represents the database row for drafts.
type draftRow struct {
	ID        int64     `db:"id"`
	EmailID   string    `db:"email_id"`
	Subject   string    `db:"subject"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *draftRow) toEntity() *domain.Draft {
	return &domain.Draft{
		ID:        r.ID,
		EmailID:   r.EmailID,
		Subject:   r.Subject,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// List lists all drafts, newest first.
func (a *DraftAdapter) List(ctx context.Context) ([]*domain.Draft, error) {
	rows, err := a.db.QueryxContext(ctx, `SELECT * FROM drafts ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.DatabaseError("list drafts", err)
	}
	defer rows.Close()

	var drafts []*domain.Draft
	for rows.Next() {
		var row draftRow
		if err := rows.StructScan(&row); err != nil {
			return nil, apperr.DatabaseError("scan draft", err)
		}
		drafts = append(drafts, row.toEntity())
	}

	return drafts, nil
}

// Create inserts a new draft and fills in its generated id.
func (a *DraftAdapter) Create(ctx context.Context, draft *domain.Draft) error {
	query := `INSERT INTO drafts (email_id, subject, body) VALUES (?, ?, ?)`

	result, err := a.db.ExecContext(ctx, query, draft.EmailID, draft.Subject, draft.Body)
	if err != nil {
		return apperr.DatabaseError("create draft", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperr.DatabaseError("create draft", err)
	}
	draft.ID = id
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = draft.CreatedAt
	return nil
}

// Update edits an existing draft.
func (a *DraftAdapter) Update(ctx context.Context, id int64, subject, body string) (*domain.Draft, error) {
	query := `UPDATE drafts SET subject = ?, body = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := a.db.ExecContext(ctx, query, subject, body, id)
	if err != nil {
		return nil, apperr.DatabaseError("update draft", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, apperr.NotFound("draft")
	}

	var row draftRow
	err = a.db.QueryRowxContext(ctx, `SELECT * FROM drafts WHERE id = ?`, id).StructScan(&row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("draft")
		}
		return nil, apperr.DatabaseError("get draft", err)
	}

	return row.toEntity(), nil
}

// Delete removes a draft by id.
func (a *DraftAdapter) Delete(ctx context.Context, id int64) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return apperr.DatabaseError("delete draft", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperr.NotFound("draft")
	}
	return nil
}

// Ensure DraftAdapter implements out.DraftRepository
var _ out.DraftRepository = (*DraftAdapter)(nil)
