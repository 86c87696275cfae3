package model

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrUpdateNotFound   = errors.New("campaign update not found")
	ErrSlugTaken        = errors.New("slug already in use")
)

// Service-level (business logic) errors
var (
	// ErrNotOwner: caller is authenticated but does not own the resource.
	// Existence is checked before ownership, so a missing campaign is
	// always reported as not-found, never forbidden.
	ErrNotOwner = errors.New("caller is not the campaign owner")

	// ErrValidation wraps client-correctable input problems
	ErrValidation = errors.New("validation failed")
)

// NewValidationError wraps ErrValidation with a human-readable reason
// so handlers can map it with errors.Is and still show the message.
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
