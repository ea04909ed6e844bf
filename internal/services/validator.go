package services

import (
	"strings"

	goa "goa.design/goa/v3/pkg"

	"portfolio/internal/domain"
)

// ReasonAllFieldsRequired is reported to the caller for every invalid submission.
const ReasonAllFieldsRequired = "All fields are required"

// ValidationError lists the fields of a submission that were empty.
type ValidationError struct {
	Missing []string
	err     error
}

func (e *ValidationError) Error() string {
	return ReasonAllFieldsRequired
}

// Unwrap exposes the per-field detail for logging
func (e *ValidationError) Unwrap() error {
	return e.err
}

// ValidateSubmission accepts s iff name, email and message are non-empty
// after trimming whitespace. Email format is not checked.
func ValidateSubmission(s domain.Submission) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"message", s.Message},
	}

	var (
		missing []string
		err     error
	)
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
			err = goa.MergeErrors(err, goa.MissingFieldError(f.name, "body"))
		}
	}

	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Missing: missing, err: err}
}
