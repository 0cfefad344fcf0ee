package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateLeadInput(input LeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	} else if len(input.Email) > 300 {
		errors = append(errors, ValidationError{"email", "must not exceed 300 characters"})
	}

	if len(input.Company) > 300 {
		errors = append(errors, ValidationError{"company", "must not exceed 300 characters"})
	}

	// Zero and negative budgets pass on purpose: sub-1000 budgets are the
	// LOW upsell segment, not an input error.
	if input.Budget == nil {
		errors = append(errors, ValidationError{"budget", "is required"})
	}

	if strings.TrimSpace(input.Need) == "" {
		errors = append(errors, ValidationError{"need", "is required"})
	}

	return errors
}
