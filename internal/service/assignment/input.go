package assignment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

const maxNoteLength = 1000

// AssignInput holds the parameters for a balanced assignment.
type AssignInput struct {
	CaseID      uuid.UUID
	Pool        []domain.Caseworker
	RequestedBy *uuid.UUID // nil = system
	Note        *string
}

// Validate checks all fields and collects all errors.
func (i AssignInput) Validate() error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if i.Note != nil && len(strings.TrimSpace(*i.Note)) > maxNoteLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ManualAssignInput holds the parameters for assigning a case to a named caseworker.
type ManualAssignInput struct {
	CaseID       uuid.UUID
	CaseworkerID uuid.UUID
	AssignedBy   *uuid.UUID
	Note         *string
}

// Validate checks all fields and collects all errors.
func (i ManualAssignInput) Validate() error {
	var errs []domain.FieldError

	if i.CaseID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "case_id", Message: "required"})
	}
	if i.CaseworkerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "caseworker_id", Message: "required"})
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
