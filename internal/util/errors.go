// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInvalidAmount       = errors.New("amount must be a positive integer of minor units")
	ErrInvalidParticipants = errors.New("participant list must be non-empty with distinct user ids")
	ErrInvalidRate         = errors.New("exchange rate must be a positive decimal")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrParticipantNotFound = errors.New("participant not found on expense")
	ErrTripNotFound        = errors.New("trip not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateEntry      = errors.New("duplicate entry") // For cases like registering an existing email
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidSession      = errors.New("invalid or expired session")
	ErrNotTripMember       = errors.New("user is not a member of this trip")
)

// IsError checks if the given error matches the target sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
