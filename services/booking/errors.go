package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no caller identity was available. Not retryable;
	// the user must sign in.
	ErrUnauthenticated = errors.New("unauthenticated: sign-in required")

	// ErrIdentityMismatch means the payload claimed a different owner than the
	// authenticated caller. Not retryable; indicates a client bug or tampering.
	ErrIdentityMismatch = errors.New("identity mismatch: payload owner differs from authenticated caller")

	// ErrNotFound is the explicit empty result for lookups.
	ErrNotFound = errors.New("booking not found")

	// ErrInvalidTransition rejects a lifecycle change the status table forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// CommitFailedError is returned once the bounded retry budget is exhausted. The
// caller may re-submit; no partial state is left behind. When the payload was
// captured for background replay, PendingRef names the capture.
type CommitFailedError struct {
	Attempts   int
	PendingRef string
	Err        error
}

func (e *CommitFailedError) Error() string {
	return fmt.Sprintf("booking commit failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *CommitFailedError) Unwrap() error { return e.Err }
