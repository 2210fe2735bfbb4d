package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers.
// The handler layer maps each of these to one stable HTTP status and
// machine-readable code; nothing below the handler mentions HTTP.
var (
	// Malformed input (bad card count, unknown position, bad state name)
	ErrInvalidRequest = errors.New("invalid request")

	// Lookup failures
	ErrDeckNotFound    = errors.New("deck not found")
	ErrSessionNotFound = errors.New("session not found")

	// Role/ownership violations; logged for security monitoring
	ErrForbidden = errors.New("forbidden")

	// Reveal attempted while the session is unpaid or refunded
	ErrPaymentRequired = errors.New("payment required")

	// Slot/session state machine violations
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrSequenceViolation = errors.New("sequential spread revealed out of order")

	// Storage failures
	ErrServiceUnavailable      = errors.New("service unavailable")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
