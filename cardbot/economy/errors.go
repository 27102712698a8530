// Package economy holds the error vocabulary shared by the pack, cooldown
// and trade packages.
package economy

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyCatalog is returned when a pack slot has no card it could draw.
var ErrEmptyCatalog = errors.New("no cards available for pack")

// ValidationError is a user-facing rejection. Reason is shown to the user
// as-is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// CooldownError reports how long a user still has to wait before the next
// pack.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active, %s remaining", e.Remaining)
}

// AsCooldown unwraps a CooldownError from err.
func AsCooldown(err error) (*CooldownError, bool) {
	var c *CooldownError
	if errors.As(err, &c) {
		return c, true
	}
	return nil, false
}
