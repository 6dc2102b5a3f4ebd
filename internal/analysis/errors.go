package analysis

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when an analysis or cover letter request is already
// in flight for the session. Callers wait for completion; there is no
// cancellation of in-flight calls.
var ErrBusy = errors.New("a request is already in progress")

// ErrNoAnalysis is returned when an operation needs a completed analysis
// and the session has none.
var ErrNoAnalysis = errors.New("no analysis available")

// ValidationError reports missing required input. No gateway call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// GenerationError reports a gateway transport failure or a response that
// does not conform to the declared schema. Msg is safe to show users;
// the wrapped cause carries the diagnostic detail.
type GenerationError struct {
	Msg string
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
