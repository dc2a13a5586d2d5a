package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation          = errors.New("invalid preset input")
	ErrPresetNotFound      = errors.New("preset not found")
	ErrNotAuthor           = errors.New("caller is not the preset author")
	ErrInvalidTransition   = errors.New("status transition not permitted")
	ErrNoSnapshot          = errors.New("preset has no previous values to revert")
	ErrRateLimited         = errors.New("submission rate limit exceeded")
	ErrEditNotEditable     = errors.New("preset status does not permit edits")
	ErrInvalidReviewAction = errors.New("invalid review action")
)

// RateLimitError carries the limiter decision alongside ErrRateLimited so the
// transport layer can surface remaining quota and the window reset time.
type RateLimitError struct {
	Limit   int
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("submission rate limit of %d per day exceeded, resets at %s", e.Limit, e.ResetAt.UTC().Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
