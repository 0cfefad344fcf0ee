package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/electronicart/marketing-agent/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// writeUseCaseError maps the usecase error taxonomy to HTTP statuses.
// Every response names the specific condition.
func writeUseCaseError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *usecase.DomainError:
		status := http.StatusBadRequest
		switch e.Code {
		case "UNAUTHORIZED":
			status = http.StatusUnauthorized
		case "LEAD_NOT_FOUND":
			status = http.StatusNotFound
		case "DRAFT_MISSING":
			status = http.StatusConflict
		}
		writeError(w, status, e.Code, e.Message)
	case *usecase.TechnicalError:
		status := http.StatusInternalServerError
		if e.Code == "DISPATCH_FAILED" {
			status = http.StatusBadGateway
		}
		writeError(w, status, e.Code, e.Message)
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
