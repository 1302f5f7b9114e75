package validation

import (
	"time"
)

// ValidationSeverity represents the severity level of a validation issue
type ValidationSeverity int

const (
	ValidationSeverityError ValidationSeverity = iota
	ValidationSeverityWarning
)

// ValidationErrorCode represents specific validation error types
type ValidationErrorCode int

const (
	ErrorNameRequired ValidationErrorCode = iota
	ErrorEmailRequired
	ErrorPhoneRequired
	ErrorAddressRequired
	ErrorStatusRequired
	ErrorInvalidEmail
	ErrorInvalidStatus
	ErrorNegativeIncome
	ErrorNegativeDependents
	ErrorNameTooLong
	ErrorFieldTooLong
	ErrorDuplicateEmail
	ErrorInvalidIncome
)

// ValidationError represents a specific validation error
type ValidationError struct {
	Field    string
	Code     ValidationErrorCode
	Message  string
	Severity ValidationSeverity
}

// ValidationResult represents the result of record validation
type ValidationResult struct {
	IsValid     bool
	ValidatedAt time.Time
	Errors      []ValidationError
	Warnings    []ValidationError
}

// FieldErrors maps each failing field to its first error message, which is
// what the form shows next to the input.
func (r ValidationResult) FieldErrors() map[string]string {
	fields := make(map[string]string)
	for _, err := range r.Errors {
		if _, seen := fields[err.Field]; !seen {
			fields[err.Field] = err.Message
		}
	}
	return fields
}

func (r ValidationResult) HasRequiredFieldErrors() bool {
	for _, err := range r.Errors {
		switch err.Code {
		case ErrorNameRequired, ErrorEmailRequired, ErrorPhoneRequired, ErrorAddressRequired, ErrorStatusRequired:
			return true
		}
	}
	return false
}
