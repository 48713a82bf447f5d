package ritmo

import (
	"errors"
	"fmt"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrDuplicateLike    = errors.New("like already exists")
)

// ValidationError reports a caller mistake in a single input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
