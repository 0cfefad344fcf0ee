package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/electronicart/marketing-agent/internal/infra/http/middleware"
	"github.com/electronicart/marketing-agent/internal/usecase"
)

// SecretHeader carries the shared approval secret.
const SecretHeader = "X-Approve-Secret"

type ApproveHandler struct {
	approve  *usecase.ApproveLeadUseCase
	provider string
}

func NewApproveHandler(approve *usecase.ApproveLeadUseCase, provider string) *ApproveHandler {
	return &ApproveHandler{
		approve:  approve,
		provider: provider,
	}
}

func (h *ApproveHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "lead id must be numeric")
		return
	}

	out, err := h.approve.Execute(ctx, usecase.ApproveLeadInput{
		LeadID: id,
		Secret: r.Header.Get(SecretHeader),
	})
	if err != nil {
		if techErr, ok := err.(*usecase.TechnicalError); ok && techErr.Code == "DISPATCH_FAILED" {
			middleware.RecordDispatchError(h.provider)
		}
		writeUseCaseError(w, err)
		return
	}

	if out.Dispatch != nil && !out.AlreadySent {
		middleware.RecordEmailSent(out.Dispatch.Provider)
	}

	writeJSON(w, http.StatusOK, out)
}
