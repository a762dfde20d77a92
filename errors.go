package eloop

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrIllegalLoopState signals that a lifecycle operation was invoked while the loop
	// was in a state that forbids it, e.g. Emit before Start or Quit after Quit.
	ErrIllegalLoopState = errors.New("illegal loop state")

	// ErrNotLoopGoroutine signals that a listener-mutating operation was invoked from a
	// goroutine other than the event loop goroutine.
	ErrNotLoopGoroutine = errors.New("not on the event loop goroutine")
)

// PayloadTypeError is returned by a typed callback whose declared payload type does not
// match the payload supplied at emit time.
type PayloadTypeError struct {
	want string
	got  string
}

func (e PayloadTypeError) Error() string {
	return fmt.Sprintf("payload type mismatch: callback expects %s, got %s", e.want, e.got)
}

// CallbackDataError wraps a callback invocation failure with the name of the event being
// dispatched. Remaining callbacks for that event are skipped; previously invoked ones are
// not rolled back.
type CallbackDataError struct {
	err   error
	event string
}

func (e CallbackDataError) Error() string {
	return fmt.Sprintf("dispatch %q: %s", e.event, e.err)
}

func (e CallbackDataError) Unwrap() error { return e.err }

// Event returns the name of the event whose dispatch failed.
func (e CallbackDataError) Event() string { return e.event }

func wrapCallbackDataError(event string, err error) *CallbackDataError {
	if err == nil {
		return nil
	}
	return &CallbackDataError{
		err:   err,
		event: event,
	}
}
