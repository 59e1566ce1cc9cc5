package service

import (
	"errors"
	"fmt"
)

// Domain error kinds. Validation and authorization failures surface to the
// client unchanged and are never retried; anything else is logged and
// replaced with a generic failure before leaving the service.

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "authorization: " + e.Reason
}

// RoundClosedError rejects writes after finalization.
type RoundClosedError struct {
	RoundID int64
}

func (e *RoundClosedError) Error() string {
	return fmt.Sprintf("round %d is finalized", e.RoundID)
}

// IncompleteRoundError rejects finalization while holes remain unscored.
// Distinct from generic validation so clients can offer the commissioner
// override.
type IncompleteRoundError struct {
	RoundID      int64
	MissingCells int
}

func (e *IncompleteRoundError) Error() string {
	return fmt.Sprintf("round %d has %d unscored holes", e.RoundID, e.MissingCells)
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ErrorCode maps a domain error to its wire code; unknown errors map to
// "internal" so storage details never leak to clients.
func ErrorCode(err error) string {
	var ve *ValidationError
	var ae *AuthorizationError
	var rc *RoundClosedError
	var ir *IncompleteRoundError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &ae):
		return "authorization"
	case errors.As(err, &rc):
		return "round_closed"
	case errors.As(err, &ir):
		return "incomplete_round"
	default:
		return "internal"
	}
}

// ClientMessage is the error text safe to return to a client.
func ClientMessage(err error) string {
	if ErrorCode(err) == "internal" {
		return "internal error"
	}
	return err.Error()
}
