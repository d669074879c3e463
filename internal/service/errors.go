package service

import (
	"errors"
	"fmt"
	"strings"
)

// ── scheduling business errors ──

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// CapacityExceededError is returned when a proposed allocation does not fit
// in the user's remaining daily capacity. Available carries the remaining
// hours (never negative) so callers can report "N hours available".
type CapacityExceededError struct {
	UserID    string
	Date      string
	Available float64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded for user %s on %s: %s hours available",
		e.UserID, e.Date, formatHours(e.Available))
}

// BulkValidationError aggregates every validation failure collected across a
// batch. No assignment from a batch carrying this error was persisted.
type BulkValidationError struct {
	Failures []string
}

func (e *BulkValidationError) Error() string {
	return strings.Join(e.Failures, "\n")
}

// formatHours renders an hour figure with up to two decimals, trimming
// trailing zeros ("3", "2.5", "1.25").
func formatHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
