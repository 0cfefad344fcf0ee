package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/electronicart/marketing-agent/internal/entity"
)

type ApproveLeadUseCase struct {
	Repo       entity.LeadRepository
	Dispatcher MailDispatcher
	Secret     string
}

func NewApproveLeadUseCase(repo entity.LeadRepository, dispatcher MailDispatcher, secret string) *ApproveLeadUseCase {
	return &ApproveLeadUseCase{
		Repo:       repo,
		Dispatcher: dispatcher,
		Secret:     secret,
	}
}

// Execute runs the approve-and-send transition. Precondition order matters:
// server secret, caller secret, lead exists, already sent, draft present.
// Dispatch failure leaves the lead DRAFT_READY so the caller can retry.
func (uc *ApproveLeadUseCase) Execute(ctx context.Context, input ApproveLeadInput) (*ApproveLeadOutput, error) {
	if uc.Secret == "" {
		return nil, &TechnicalError{
			Code:    "SECRET_NOT_CONFIGURED",
			Message: "APPROVE_SECRET is not configured on the server",
		}
	}

	if input.Secret != uc.Secret {
		return nil, &DomainError{
			Code:    "UNAUTHORIZED",
			Message: "invalid approval secret",
		}
	}

	lead, err := uc.Repo.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{
				Code:    "LEAD_NOT_FOUND",
				Message: fmt.Sprintf("lead %d does not exist", input.LeadID),
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to load lead: " + err.Error(),
		}
	}

	if lead.Status == entity.StatusSent {
		return &ApproveLeadOutput{
			Success:     true,
			ID:          lead.ID,
			Status:      entity.StatusSent,
			AlreadySent: true,
		}, nil
	}

	if lead.DraftSubject == "" || lead.DraftBody == "" {
		return nil, &DomainError{
			Code:    "DRAFT_MISSING",
			Message: fmt.Sprintf("lead %d has no draft to send", lead.ID),
		}
	}

	if uc.Dispatcher == nil {
		return nil, &TechnicalError{
			Code:    "MAIL_NOT_CONFIGURED",
			Message: "no mail provider is configured (SENDGRID_API_KEY or SMTP_HOST)",
		}
	}

	result, err := uc.Dispatcher.Send(ctx, lead.Email, lead.DraftSubject, lead.DraftBody)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DISPATCH_FAILED",
			Message: "mail provider rejected the send: " + err.Error(),
		}
	}

	sentAt := time.Now().UTC()
	updated, err := uc.Repo.MarkSent(ctx, lead.ID, sentAt)
	if err != nil {
		log.Printf("⚠️ CRITICAL: email for lead %d went out but status update failed: %v", lead.ID, err)
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "email dispatched but status update failed: " + err.Error(),
		}
	}

	out := &ApproveLeadOutput{
		Success:  true,
		ID:       lead.ID,
		Status:   entity.StatusSent,
		Dispatch: result,
	}

	if !updated {
		// Lost the CAS to a concurrent approval. Status and sent_at were
		// written exactly once by the winner; report idempotent success.
		out.AlreadySent = true
		return out, nil
	}

	log.Printf("🚀 Lead %d wysłany do %s przez %s", lead.ID, lead.Email, result.Provider)
	return out, nil
}
