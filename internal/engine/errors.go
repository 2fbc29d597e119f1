package engine

import (
	"errors"
	"fmt"
)

// Invariant violations. These signal integration bugs in the caller, distinct
// from configuration errors (which fail soft) and validation errors (which
// reject a single write).
var (
	ErrNotInProgress     = errors.New("assessment is not in progress")
	ErrAlreadyInProgress = errors.New("assessment is already in progress")
	ErrUnknownQuestion   = errors.New("unknown question id")
)

// ValidationError reports an answer failing a question's type constraints.
// The write is rejected, prior state is unchanged, and the caller gets the
// field/constraint/message triple for UI display.
type ValidationError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s (%s): %s", e.Field, e.Constraint, e.Message)
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
