package eloop

// event is one queued record: who fired it, its name and its payload. Built at Emit
// time, consumed exactly once by the loop goroutine, then discarded. The payload is
// opaque to the loop; only the receiving callback gives it a type.
type event struct {
	emitter *Emitter
	name    string
	data    any
}

func newEvent(emitter *Emitter, name string, data any) *event {
	return &event{emitter: emitter, name: name, data: data}
}
