package grievance

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

const (
	maxCategoryLength    = 100
	maxDescriptionLength = 5000
	maxNoteLength        = 1000
)

// CreateCaseInput holds the parameters for submitting a case.
type CreateCaseInput struct {
	SubmitterID uuid.UUID
	Category    string
	Subcategory *string
	Description string
	Priority    domain.Priority // empty = MEDIUM
	PerformedBy *uuid.UUID      // nil = system
}

// Validate checks all fields and collects all errors.
func (i CreateCaseInput) Validate() error {
	var errs []domain.FieldError

	if i.SubmitterID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "submitter_id", Message: "required"})
	}

	category := strings.TrimSpace(i.Category)
	if category == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	} else if len(category) > maxCategoryLength {
		errs = append(errs, domain.FieldError{Field: "category", Message: "max 100 characters"})
	}

	if i.Subcategory != nil && len(strings.TrimSpace(*i.Subcategory)) > maxCategoryLength {
		errs = append(errs, domain.FieldError{Field: "subcategory", Message: "max 100 characters"})
	}

	description := strings.TrimSpace(i.Description)
	if description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	} else if len(description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}

	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateCaseResult is a submitted case with what was derived for it.
type CreateCaseResult struct {
	Case       *domain.Case
	Deadlines  []domain.Deadline
	Assignment *domain.Assignment // nil when the case was left unassigned
}

// ChangeStatusInput holds the parameters for a status change.
type ChangeStatusInput struct {
	CaseID      uuid.UUID
	Status      domain.CaseStatus
	PerformedBy *uuid.UUID
	Note        *string
}

// Validate checks all fields and collects all errors.
func (i ChangeStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	if i.Note != nil && len(strings.TrimSpace(*i.Note)) > maxNoteLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
