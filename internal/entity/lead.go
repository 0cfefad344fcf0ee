package entity

import (
	"context"
	"errors"
	"time"
)

// Lifecycle status of a lead. Rows are only ever created already drafted,
// so there is no persisted NEW state.
const (
	StatusDraftReady = "DRAFT_READY"
	StatusSent       = "SENT"
)

var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Company      string     `json:"company,omitempty"`
	Budget       int        `json:"budget"`
	Need         string     `json:"need"`
	Segment      Segment    `json:"segment"`
	Status       string     `json:"status"` // DRAFT_READY, SENT
	DraftSubject string     `json:"draft_subject,omitempty"`
	DraftBody    string     `json:"draft_body,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Draft is the subject/body pair proposed for the outbound email.
type Draft struct {
	Subject string
	Body    string
}

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindRecent(ctx context.Context, limit int) ([]*Lead, error)

	// MarkSent flips a DRAFT_READY lead to SENT and stamps sent_at in one
	// statement. Returns false when the lead was no longer DRAFT_READY,
	// i.e. a concurrent approval already sent it.
	MarkSent(ctx context.Context, id int64, sentAt time.Time) (bool, error)
}
