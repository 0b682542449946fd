package fleet

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a directly addressed entity does not
	// exist. Lifecycle transitions on unknown ids are silent no-ops
	// instead; this error is only used for explicit update/delete calls.
	ErrNotFound = errors.New("entity not found")

	// ErrTripNotDraft is returned when dispatching a trip that is not in Draft.
	ErrTripNotDraft = errors.New("trip is not in draft state")

	// ErrTripNotDispatched is returned when completing a trip that is not dispatched.
	ErrTripNotDispatched = errors.New("trip is not dispatched")

	// ErrTripFinished is returned when cancelling a trip already in a terminal state.
	ErrTripFinished = errors.New("trip is already completed or cancelled")

	// ErrStatusLocked is returned when editing a vehicle status that is
	// currently derived from a dispatched trip or active maintenance log.
	ErrStatusLocked = errors.New("vehicle status is controlled by an active trip or maintenance")
)

// ValidationError reports a request that violates a precondition, with
// the offending field. It is always returned before any state mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsStateConflict reports whether err is a lifecycle state conflict, i.e.
// the request was well-formed but the entity is no longer in a state that
// admits the transition. Callers typically map this to HTTP 409.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrTripNotDraft) ||
		errors.Is(err, ErrTripNotDispatched) ||
		errors.Is(err, ErrTripFinished) ||
		errors.Is(err, ErrStatusLocked)
}
