package eloop

import "sync"

// eventQueue is an unbounded FIFO hand-off between producer goroutines and the loop
// goroutine. push never blocks; take blocks until an event is available or the queue is
// closed. A take that returns ok=false carries no event: the caller rechecks the loop
// state and either retries or exits, so a wake is never by itself a stop signal.
type eventQueue struct {
	mu     sync.Mutex
	wake   *sync.Cond
	events []*event
	closed bool
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	q.wake = sync.NewCond(&q.mu)
	return q
}

func (q *eventQueue) push(ev *event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		// Racing pushes after close are dropped, same as events left undelivered on stop.
		return
	}

	q.events = append(q.events, ev)
	q.wake.Signal()
}

func (q *eventQueue) take() (*event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.events) == 0 {
		if q.closed {
			return nil, false
		}
		q.wake.Wait()
	}

	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}

// close wakes every waiter. Events already queued are not drained: take keeps returning
// them until the backlog is empty, but the loop stops consuming once it observes the
// stopped state.
func (q *eventQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.wake.Broadcast()
}

func (q *eventQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
