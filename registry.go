package eloop

// callbackRegistry maps event names to the ordered list of callbacks registered for
// them. It is owned by one Emitter and mutated only on the loop goroutine; the Emitter
// enforces that discipline, so the registry itself carries no locks.
type callbackRegistry struct {
	callbacks map[string][]*Callback
}

func newCallbackRegistry() *callbackRegistry {
	return &callbackRegistry{
		callbacks: make(map[string][]*Callback),
	}
}

// register appends cb to the list for the event. No de-duplication: registering the same
// callback twice makes it fire twice.
func (r *callbackRegistry) register(event string, cb *Callback) {
	r.callbacks[event] = append(r.callbacks[event], cb)
}

// unregister removes the first occurrence of cb, by pointer identity, from the event's
// list. No-op when the callback, or the event itself, is unknown.
func (r *callbackRegistry) unregister(event string, cb *Callback) {
	list, found := r.callbacks[event]
	if !found {
		return
	}

	for i, registered := range list {
		if registered == cb {
			r.callbacks[event] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
}

// unregisterAll drops every callback for the event.
func (r *callbackRegistry) unregisterAll(event string) {
	delete(r.callbacks, event)
}

// dispatchAll invokes every callback registered for the event, in registration order,
// with the payload. An event with no listeners is a no-op. Iteration runs over a
// snapshot of the list so a one-shot callback can unregister itself mid-dispatch.
//
// The first callback failure aborts the remaining callbacks for this event and is
// returned wrapped as a *CallbackDataError; callbacks already invoked are not rolled
// back, and other queued events are unaffected.
func (r *callbackRegistry) dispatchAll(event string, data any) error {
	list, found := r.callbacks[event]
	if !found {
		return nil
	}

	snapshot := make([]*Callback, len(list))
	copy(snapshot, list)

	for _, cb := range snapshot {
		if err := cb.run(data); err != nil {
			return wrapCallbackDataError(event, err)
		}
	}

	return nil
}
