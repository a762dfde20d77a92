package eloop

import (
	"fmt"
	"reflect"
)

// Callback is a registered unit of work invoked with an event's payload, always on the
// event loop goroutine. The same *Callback value may be registered multiple times; Off
// removes occurrences by pointer identity, one at a time.
type Callback struct {
	run func(data any) error
}

// NewCallback builds a Callback with a declared payload type. When the payload emitted
// for the event is not assignable to T the callback is not invoked and dispatch of that
// event is aborted with a *CallbackDataError wrapping a *PayloadTypeError.
func NewCallback[T any](fn func(T)) *Callback {
	return &Callback{
		run: func(data any) error {
			v, ok := data.(T)
			if !ok {
				return &PayloadTypeError{
					want: reflect.TypeOf((*T)(nil)).Elem().String(),
					got:  fmt.Sprintf("%T", data),
				}
			}
			fn(v)
			return nil
		},
	}
}

// NewUntypedCallback builds a Callback that accepts any payload without a type check.
func NewUntypedCallback(fn func(any)) *Callback {
	return &Callback{
		run: func(data any) error {
			fn(data)
			return nil
		},
	}
}
