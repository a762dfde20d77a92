// Package eloop provides a single-goroutine event dispatch loop: callbacks registered on
// emitters always run sequentially on the loop's own goroutine, while events may be
// emitted from any goroutine.
package eloop

import (
	"sync/atomic"

	"github.com/petermattis/goid"
	"github.com/pkg/errors"
)

type loopState int32

const (
	stateCreated loopState = iota
	stateRunning
	stateStopped
)

// RunFunc is the loop's entry hook. It executes once, on the loop goroutine, after the
// loop enters the running state and before the first event is dequeued: the place to
// create emitters, register the initial listeners and fire the initial events.
type RunFunc func(*Loop)

// Loop owns a dedicated goroutine that dequeues and dispatches events in FIFO order.
//
// The lifecycle is strictly linear: a Loop is created, started once, quit once, and
// never reused. It is strictly coupled with Emitter: emitters expose events and collect
// callbacks, the Loop makes sure every callback executes on the loop goroutine.
type Loop struct {
	// state moves Created -> Running -> Stopped; atomics give the visibility guarantee
	// between the goroutine calling Quit and the loop goroutine's cycle check.
	state  atomic.Int32
	gid    atomic.Int64
	queue  *eventQueue
	run    RunFunc
	logger Logger
}

// NewLoop creates a Loop in the created state. The run hook may be nil; a nil logger
// disables logging. The loop goroutine is not spawned until Start.
func NewLoop(logger Logger, run RunFunc) *Loop {
	if logger == nil {
		logger = noopLogger{}
	}

	return &Loop{
		queue:  newEventQueue(),
		run:    run,
		logger: logger.WithField("type", "loop"),
	}
}

// Start spawns the loop goroutine, which executes the run hook and then enters the
// dispatch cycle. The loop is running before the hook executes, so emitting from inside
// the hook is legal; those events are dispatched once the hook returns. A Loop starts
// only once: a second Start, or a Start after Quit, returns ErrIllegalLoopState.
func (l *Loop) Start() error {
	if !l.state.CompareAndSwap(int32(stateCreated), int32(stateRunning)) {
		return errors.Wrap(ErrIllegalLoopState, "start")
	}

	go l.cycle()
	return nil
}

// Quit stops the loop: no further events are accepted or dequeued. An in-flight dispatch
// runs to completion; events still queued are dropped silently. Only legal while the
// loop is running.
func (l *Loop) Quit() error {
	if !l.state.CompareAndSwap(int32(stateRunning), int32(stateStopped)) {
		return errors.Wrap(ErrIllegalLoopState, "quit")
	}

	dropped := l.queue.len()
	l.queue.close()

	l.logger.Debugf("loop stopped, %d queued events dropped", dropped)
	return nil
}

// Emitter creates and returns a new Emitter bound to this Loop. Only legal once the loop
// is running, i.e. from the run hook or from a callback.
func (l *Loop) Emitter() (*Emitter, error) {
	if loopState(l.state.Load()) != stateRunning {
		return nil, errors.Wrap(ErrIllegalLoopState, "emitter")
	}

	return newEmitter(l), nil
}

// enqueue hands an event over to the loop goroutine. Called internally by Emitter.Emit,
// usually from a background goroutine; the queue is the only structure shared between
// producers and the loop.
func (l *Loop) enqueue(ev *event) error {
	if loopState(l.state.Load()) != stateRunning {
		return errors.Wrapf(ErrIllegalLoopState, "emit %q", ev.name)
	}

	l.queue.push(ev)
	return nil
}

// isLoopGoroutine reports whether the calling goroutine is the loop goroutine.
func (l *Loop) isLoopGoroutine() bool {
	return goid.Get() == l.gid.Load()
}

func (l *Loop) checkLoopGoroutine(op string) error {
	if !l.isLoopGoroutine() {
		return errors.Wrap(ErrNotLoopGoroutine, op)
	}
	return nil
}

// cycle is the body of the loop goroutine: run hook first, then take-dispatch until the
// state flips to stopped. A take that yields no event is not a stop signal; the state
// check decides.
func (l *Loop) cycle() {
	l.gid.Store(goid.Get())
	l.logger.Debug("loop goroutine started")

	if l.run != nil {
		l.run(l)
	}

	for loopState(l.state.Load()) == stateRunning {
		ev, ok := l.queue.take()
		if !ok {
			continue
		}

		// All the code executed by the callbacks runs on the loop goroutine. A dispatch
		// fault aborts that one event's remaining callbacks only; the cycle moves on.
		if err := ev.emitter.dispatch(ev.name, ev.data); err != nil {
			l.logger.Errorf("dispatch failed: %s", err)
		}
	}

	l.logger.Debug("loop goroutine exited")
}
