package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/electronicart/marketing-agent/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

// Compile-time check that LeadRepository satisfies entity.LeadRepository.
var _ entity.LeadRepository = (*LeadRepository)(nil)

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, email, company, budget, need, segment, status, draft_subject, draft_body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		lead.Name,
		lead.Email,
		nullString(lead.Company),
		lead.Budget,
		lead.Need,
		string(lead.Segment),
		lead.Status,
		nullString(lead.DraftSubject),
		nullString(lead.DraftBody),
	).Scan(
		&lead.ID,
		&lead.CreatedAt,
	)
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, company, budget, need, segment, status, draft_subject, draft_body, sent_at, created_at
		FROM leads
		WHERE id = $1
	`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func (r *LeadRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Lead, error) {
	query := `
		SELECT id, name, email, company, budget, need, segment, status, draft_subject, draft_body, sent_at, created_at
		FROM leads
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) (bool, error) {
	query := `
		UPDATE leads
		SET status = $1, sent_at = $2
		WHERE id = $3 AND status = $4
	`

	res, err := r.DB.ExecContext(ctx, query, entity.StatusSent, sentAt, id, entity.StatusDraftReady)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead         entity.Lead
		company      sql.NullString
		segment      sql.NullString
		draftSubject sql.NullString
		draftBody    sql.NullString
		sentAt       sql.NullTime
	)

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&company,
		&lead.Budget,
		&lead.Need,
		&segment,
		&lead.Status,
		&draftSubject,
		&draftBody,
		&sentAt,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Company = company.String
	lead.Segment = entity.Segment(segment.String)
	lead.DraftSubject = draftSubject.String
	lead.DraftBody = draftBody.String
	if sentAt.Valid {
		t := sentAt.Time
		lead.SentAt = &t
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
