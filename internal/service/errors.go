package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserDisabled       = errors.New("inactive user")

	// Delete-on-absent outcomes, surfaced as data to the handler layer
	ErrNothingToDelete = errors.New("nothing to delete")
	ErrNothingToRemove = errors.New("nothing to remove")
)

// InsufficientBudgetError is returned when a category allocation would
// exceed the budget's unallocated amount. It carries the overage so the
// caller can report how much room was actually left.
type InsufficientBudgetError struct {
	Requested float64
	Remaining float64
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("insufficient budget: requested %.2f, remaining %.2f", e.Requested, e.Remaining)
}
