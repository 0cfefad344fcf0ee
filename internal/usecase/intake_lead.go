package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/electronicart/marketing-agent/internal/entity"
)

type IntakeLeadUseCase struct {
	Repo   entity.LeadRepository
	Drafts DraftService
}

func NewIntakeLeadUseCase(repo entity.LeadRepository, drafts DraftService) *IntakeLeadUseCase {
	return &IntakeLeadUseCase{
		Repo:   repo,
		Drafts: drafts,
	}
}

// Execute runs the intake transition: classify, draft, persist DRAFT_READY.
// A failing draft generator never aborts intake; a failing insert always does.
func (uc *IntakeLeadUseCase) Execute(ctx context.Context, input LeadInput) (*IntakeLeadOutput, error) {
	validationErrors := ValidateLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	budget := *input.Budget
	segment := entity.ClassifySegment(budget)
	label := entity.OfferLabel(segment)

	draftSource := "model"
	draft, err := uc.Drafts.Generate(ctx, DraftRequest{
		Name:         input.Name,
		Email:        input.Email,
		Company:      input.Company,
		Budget:       budget,
		Need:         input.Need,
		SegmentLabel: label,
	})
	if err != nil {
		log.Printf("⚠️ Draft generation unavailable, using fallback: %v", err)
		draft = FallbackDraft(input.Name, input.Company, budget, input.Need)
		draftSource = "fallback"
	}

	lead := &entity.Lead{
		Name:         input.Name,
		Email:        input.Email,
		Company:      input.Company,
		Budget:       budget,
		Need:         input.Need,
		Segment:      segment,
		Status:       entity.StatusDraftReady,
		DraftSubject: draft.Subject,
		DraftBody:    draft.Body,
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	log.Printf("📥 Lead %d (%s) zaklasyfikowany jako %s", lead.ID, lead.Email, segment)

	return &IntakeLeadOutput{
		ID:               lead.ID,
		Segment:          string(segment),
		RecommendedOffer: label,
		Status:           lead.Status,
		DraftSubject:     lead.DraftSubject,
		DraftBody:        lead.DraftBody,
		DraftSource:      draftSource,
		NextStep:         fmt.Sprintf("Zatwierdź i wyślij: POST /lead/%d/approve (nagłówek X-Approve-Secret)", lead.ID),
	}, nil
}
