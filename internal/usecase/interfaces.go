package usecase

import (
	"context"
	"errors"

	"github.com/electronicart/marketing-agent/internal/entity"
)

// ErrDraftNotConfigured is returned by a DraftService that has no model
// credentials. The intake use case treats it like any other generation
// failure and falls back to template text.
var ErrDraftNotConfigured = errors.New("draft generator is not configured")

type LeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Budget  *int   `json:"budget"`
	Need    string `json:"need"`
}

type IntakeLeadOutput struct {
	ID               int64  `json:"id"`
	Segment          string `json:"segment"`
	RecommendedOffer string `json:"recommended_offer"`
	Status           string `json:"status"`
	DraftSubject     string `json:"draft_subject"`
	DraftBody        string `json:"draft_body"`
	DraftSource      string `json:"draft_source"` // model, fallback
	NextStep         string `json:"next_step"`
}

type ApproveLeadInput struct {
	LeadID int64
	Secret string
}

type ApproveLeadOutput struct {
	Success     bool            `json:"success"`
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	AlreadySent bool            `json:"already_sent"`
	Dispatch    *DispatchResult `json:"dispatch,omitempty"`
}

// DraftRequest is the lead context handed to the draft generator.
type DraftRequest struct {
	Name         string
	Email        string
	Company      string
	Budget       int
	Need         string
	SegmentLabel string
}

type DraftService interface {
	Generate(ctx context.Context, req DraftRequest) (*entity.Draft, error)
}

// DispatchResult is the delivery acknowledgment from the mail provider.
type DispatchResult struct {
	Provider   string `json:"provider"`
	MessageID  string `json:"message_id,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

type MailDispatcher interface {
	Send(ctx context.Context, to, subject, body string) (*DispatchResult, error)
}
