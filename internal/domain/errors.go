package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation and the search pipeline.
var (
	// ErrInvalidRequest is the parent of every validation failure.
	ErrInvalidRequest = errors.New("invalid request")

	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidTimeWindow  = errors.New("invalid time window")
	ErrConflictingOptions = errors.New("conflicting options")
	ErrInvalidRange       = errors.New("invalid range")
	ErrInvalidWeekday     = errors.New("invalid weekday")
	ErrInvalidEmail       = errors.New("invalid email")

	// ErrLocationNotFound is returned when the lookup service knows no code for a place.
	ErrLocationNotFound = errors.New("location not found")

	// ErrDepartureUnresolved aborts a search whose departure place has no code.
	ErrDepartureUnresolved = errors.New("departure location could not be resolved")

	// ErrNoDestinations aborts a search when none of the destinations resolved.
	ErrNoDestinations = errors.New("no destination location could be resolved")

	// ErrProviderUnavailable indicates the remote service answered with a failure.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ValidationKind names the rule a request violated.
type ValidationKind string

// Validation kinds, one per rule family.
const (
	KindInvalidDateRange   ValidationKind = "InvalidDateRange"
	KindInvalidTimeWindow  ValidationKind = "InvalidTimeWindow"
	KindConflictingOptions ValidationKind = "ConflictingOptions"
	KindInvalidRange       ValidationKind = "InvalidRange"
	KindInvalidWeekday     ValidationKind = "InvalidWeekday"
	KindInvalidEmail       ValidationKind = "InvalidEmail"
)

var kindSentinels = map[ValidationKind]error{
	KindInvalidDateRange:   ErrInvalidDateRange,
	KindInvalidTimeWindow:  ErrInvalidTimeWindow,
	KindConflictingOptions: ErrConflictingOptions,
	KindInvalidRange:       ErrInvalidRange,
	KindInvalidWeekday:     ErrInvalidWeekday,
	KindInvalidEmail:       ErrInvalidEmail,
}

// ValidationError describes the first rule a raw search request violated.
// Message is meant to be shown to the user as is.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

// NewValidationError creates a ValidationError of the given kind.
func NewValidationError(kind ValidationKind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes ErrInvalidRequest and the sentinel of the error's kind.
func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrInvalidRequest}
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	return errs
}

// ProviderError wraps a failure of the remote flight service.
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

// NewProviderError creates a non-retryable ProviderError.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a ProviderError marked as retryable.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderUnavailableError creates a ProviderError for a failed upstream answer.
func NewProviderUnavailableError(provider, detail string) *ProviderError {
	if detail == "" {
		return NewProviderError(provider, ErrProviderUnavailable)
	}
	return NewProviderError(provider, fmt.Errorf("%w: %s", ErrProviderUnavailable, detail))
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsInvalidRequest reports whether err is any validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsValidationKind reports whether err is a ValidationError of the given kind.
func IsValidationKind(err error, kind ValidationKind) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}

// IsProviderUnavailable reports whether err came from a failed upstream answer.
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsRetryable reports whether err is a ProviderError for a transient
// failure, such as a dropped connection.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
