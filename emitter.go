package eloop

// Emitter is an object that fires events. Clients register callbacks for event names and
// emit payloads; the bound Loop guarantees every callback executes on the event loop
// goroutine, one event at a time.
//
// An Emitter is bound for life to the Loop that created it. Emit is safe from any
// goroutine; every listener-mutating method (On, Once, Off and variants) must be called
// from the loop goroutine, i.e. from the loop's run hook or from inside a callback.
type Emitter struct {
	loop     *Loop
	registry *callbackRegistry
}

func newEmitter(loop *Loop) *Emitter {
	return &Emitter{
		loop:     loop,
		registry: newCallbackRegistry(),
	}
}

// On adds cb to the end of the list for the event. No checks are made to see if the
// callback has already been added: registering the same *Callback twice makes it fire
// twice. Returns ErrNotLoopGoroutine when called off the loop goroutine.
func (e *Emitter) On(event string, cb *Callback) error {
	if err := e.loop.checkLoopGoroutine("On"); err != nil {
		return err
	}

	e.registry.register(event, cb)
	return nil
}

// OnEvents adds cb to the end of the list for each of the events, as On does for one.
func (e *Emitter) OnEvents(events []string, cb *Callback) error {
	if err := e.loop.checkLoopGoroutine("OnEvents"); err != nil {
		return err
	}

	for _, event := range events {
		e.registry.register(event, cb)
	}
	return nil
}

// Once adds a one-shot callback for the event: cb is invoked on the next dispatch of the
// event only, after which it is removed. The removal happens from inside the wrapper's
// own invocation, on the loop goroutine. A payload type mismatch leaves the callback
// registered, so a later emission with the declared type still fires it once.
func (e *Emitter) Once(event string, cb *Callback) error {
	if err := e.loop.checkLoopGoroutine("Once"); err != nil {
		return err
	}

	e.registerOnce(event, cb)
	return nil
}

// OnceEvents adds a one-shot callback for each of the events, as Once does for one. Each
// event gets its own wrapper: firing one does not unregister the others.
func (e *Emitter) OnceEvents(events []string, cb *Callback) error {
	if err := e.loop.checkLoopGoroutine("OnceEvents"); err != nil {
		return err
	}

	for _, event := range events {
		e.registerOnce(event, cb)
	}
	return nil
}

func (e *Emitter) registerOnce(event string, cb *Callback) {
	// The wrapper removes itself, not the caller's callback: those are distinct handles
	// and the caller may have registered cb independently as well.
	wrapper := &Callback{}
	wrapper.run = func(data any) error {
		if err := cb.run(data); err != nil {
			return err
		}
		e.registry.unregister(event, wrapper)
		return nil
	}

	e.registry.register(event, wrapper)
}

// Off removes at most one occurrence of cb, by pointer identity, from the event's list.
// A callback registered twice needs two Off calls to disappear. No-op if absent.
func (e *Emitter) Off(event string, cb *Callback) error {
	if err := e.loop.checkLoopGoroutine("Off"); err != nil {
		return err
	}

	e.registry.unregister(event, cb)
	return nil
}

// OffAll removes every callback registered for the event.
func (e *Emitter) OffAll(event string) error {
	if err := e.loop.checkLoopGoroutine("OffAll"); err != nil {
		return err
	}

	e.registry.unregisterAll(event)
	return nil
}

// Emit queues the event for dispatch on the loop goroutine. Callbacks registered for it
// run in registration order with data as argument. Safe from any goroutine, including
// the loop goroutine itself. Returns ErrIllegalLoopState unless the loop is running.
func (e *Emitter) Emit(event string, data any) error {
	return e.loop.enqueue(newEvent(e, event, data))
}

// dispatch is invoked by the Loop only, on the loop goroutine.
func (e *Emitter) dispatch(event string, data any) error {
	return e.registry.dispatchAll(event, data)
}
