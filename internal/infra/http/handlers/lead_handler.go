package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/electronicart/marketing-agent/internal/entity"
	"github.com/electronicart/marketing-agent/internal/infra/http/middleware"
	"github.com/electronicart/marketing-agent/internal/usecase"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type LeadHandler struct {
	intake      *usecase.IntakeLeadUseCase
	leadRepo    entity.LeadRepository
	rateLimiter *RateLimiter
}

func NewLeadHandler(intake *usecase.IntakeLeadUseCase, leadRepo entity.LeadRepository) *LeadHandler {
	return &LeadHandler{
		intake:      intake,
		leadRepo:    leadRepo,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

// LeadSummary is the listing shape: no draft text.
type LeadSummary struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Company   string     `json:"company,omitempty"`
	Budget    int        `json:"budget"`
	Segment   string     `json:"segment"`
	Status    string     `json:"status"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "budget" {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "budget must be a number")
			return
		}
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return
	}

	out, err := h.intake.Execute(ctx, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCreated(out.Segment)
	middleware.RecordDraftGenerated(out.DraftSource)

	writeJSON(w, http.StatusCreated, out)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "lead id must be numeric")
		return
	}

	lead, err := h.leadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "LEAD_NOT_FOUND", "lead does not exist")
			return
		}
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive number")
			return
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	leads, err := h.leadRepo.FindRecent(ctx, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list leads")
		return
	}

	summaries := make([]LeadSummary, 0, len(leads))
	for _, lead := range leads {
		summaries = append(summaries, LeadSummary{
			ID:        lead.ID,
			Name:      lead.Name,
			Email:     lead.Email,
			Company:   lead.Company,
			Budget:    lead.Budget,
			Segment:   string(lead.Segment),
			Status:    lead.Status,
			SentAt:    lead.SentAt,
			CreatedAt: lead.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
