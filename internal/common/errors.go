package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every lifecycle failure wraps exactly one of these so
// handlers can map it to a status with errors.Is.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("resource not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidReference = errors.New("invalid reference")
	ErrConflict         = errors.New("conflict")
	ErrStorage          = errors.New("storage failure")
)

// Post errors
var (
	ErrPostNotFound     = fmt.Errorf("post not found: %w", ErrNotFound)
	ErrPostNotDraft     = fmt.Errorf("post is not a draft: %w", ErrConflict)
	ErrSlugExhausted    = fmt.Errorf("no unique slug available: %w", ErrConflict)
	ErrCategoryNotFound = fmt.Errorf("category not found: %w", ErrInvalidReference)
	ErrTagNotFound      = fmt.Errorf("tag not found: %w", ErrInvalidReference)
	ErrNoActiveCategory = &ValidationError{Field: "category_ids", Reason: "at least one active category is required to publish"}
	ErrContentTooShort  = &ValidationError{Field: "content", Reason: "content must be at least 100 characters to publish"}
)

// Comment errors
var (
	ErrCommentNotFound       = fmt.Errorf("comment not found: %w", ErrNotFound)
	ErrParentCommentNotFound = fmt.Errorf("parent comment not found: %w", ErrNotFound)
	ErrAlreadyModerated      = fmt.Errorf("comment already moderated: %w", ErrConflict)
)

// ValidationError carries the human-readable reason of a failed rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StorageError hides the underlying persistence error from callers while
// keeping it available for logs.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show a client. Storage and
// unknown errors never expose their cause.
func PublicMessage(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}
