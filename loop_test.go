package eloop

import (
	"sync"
	"testing"
	"time"

	"github.com/petermattis/goid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoopStartTwice(t *testing.T) {
	loop := NewLoop(nil, nil)

	require.NoError(t, loop.Start())
	require.ErrorIs(t, loop.Start(), ErrIllegalLoopState)

	require.NoError(t, loop.Quit())
	require.ErrorIs(t, loop.Start(), ErrIllegalLoopState)
}

func TestLoopQuitBeforeStart(t *testing.T) {
	loop := NewLoop(nil, nil)
	require.ErrorIs(t, loop.Quit(), ErrIllegalLoopState)
}

func TestLoopQuitTwice(t *testing.T) {
	loop := NewLoop(nil, nil)

	require.NoError(t, loop.Start())
	require.NoError(t, loop.Quit())
	require.ErrorIs(t, loop.Quit(), ErrIllegalLoopState)
}

func TestEmitterBeforeStart(t *testing.T) {
	loop := NewLoop(nil, nil)

	_, err := loop.Emitter()
	require.ErrorIs(t, err, ErrIllegalLoopState)
}

func TestEmitterAfterQuit(t *testing.T) {
	loop := NewLoop(nil, nil)
	require.NoError(t, loop.Start())
	require.NoError(t, loop.Quit())

	_, err := loop.Emitter()
	require.ErrorIs(t, err, ErrIllegalLoopState)
}

func TestEmitAfterQuit(t *testing.T) {
	emitterC := make(chan *Emitter, 1)
	loop := NewLoop(nil, func(l *Loop) {
		e, err := l.Emitter()
		require.NoError(t, err)
		emitterC <- e
	})
	require.NoError(t, loop.Start())

	e := <-emitterC
	require.NoError(t, loop.Quit())
	require.ErrorIs(t, e.Emit("event", nil), ErrIllegalLoopState)
}

func TestEmitDuringRunHookDispatchedAfterHook(t *testing.T) {
	var order []string
	done := make(chan struct{})

	loop := NewLoop(nil, func(l *Loop) {
		e, err := l.Emitter()
		require.NoError(t, err)

		require.NoError(t, e.On("greet", NewCallback(func(s string) {
			order = append(order, "greet:"+s)
			close(done)
		})))

		// Emitted inside the hook: legal, but dispatched only once the hook returns.
		require.NoError(t, e.Emit("greet", "world"))
		order = append(order, "hook")
	})

	require.NoError(t, loop.Start())
	<-done
	require.NoError(t, loop.Quit())

	require.Equal(t, []string{"hook", "greet:world"}, order)
}

func TestConcurrentEmitNoLossNoDuplication(t *testing.T) {
	const producers = 8
	const eventsEach = 200

	var deliveries int
	var loopGID int64
	affinityOK := true
	done := make(chan struct{})

	emitterC := make(chan *Emitter, 1)
	loop := NewLoop(nil, func(l *Loop) {
		loopGID = goid.Get()

		e, err := l.Emitter()
		require.NoError(t, err)

		require.NoError(t, e.On("tick", NewCallback(func(int) {
			if goid.Get() != loopGID {
				affinityOK = false
			}
			deliveries++
			if deliveries == producers*eventsEach {
				close(done)
			}
		})))

		emitterC <- e
	})
	require.NoError(t, loop.Start())

	e := <-emitterC
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < eventsEach; i++ {
				if err := e.Emit("tick", i); err != nil {
					t.Errorf("emit: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("expected %d deliveries, got %d", producers*eventsEach, deliveries)
	}
	require.NoError(t, loop.Quit())

	require.Equal(t, producers*eventsEach, deliveries)
	require.True(t, affinityOK, "every delivery must run on the loop goroutine")
}

func TestFIFOAcrossEmitters(t *testing.T) {
	var order []string
	done := make(chan struct{})

	loop := NewLoop(nil, func(l *Loop) {
		first, err := l.Emitter()
		require.NoError(t, err)
		second, err := l.Emitter()
		require.NoError(t, err)

		record := func(s string) { order = append(order, s) }
		require.NoError(t, first.On("a", NewCallback(record)))
		require.NoError(t, second.On("b", NewCallback(record)))
		require.NoError(t, first.On("_done", NewCallback(func(string) { close(done) })))

		// One shared queue per loop: arrival order wins, not emitter identity.
		require.NoError(t, first.Emit("a", "a1"))
		require.NoError(t, second.Emit("b", "b1"))
		require.NoError(t, first.Emit("a", "a2"))
		require.NoError(t, first.Emit("_done", ""))
	})

	require.NoError(t, loop.Start())
	<-done
	require.NoError(t, loop.Quit())

	require.Equal(t, []string{"a1", "b1", "a2"}, order)
}

func TestQuitDropsQueuedEvents(t *testing.T) {
	var delivered int
	inFirst := make(chan struct{})
	release := make(chan struct{})

	emitterC := make(chan *Emitter, 1)
	loop := NewLoop(nil, func(l *Loop) {
		e, err := l.Emitter()
		require.NoError(t, err)

		require.NoError(t, e.On("blocker", NewUntypedCallback(func(any) {
			delivered++
			close(inFirst)
			<-release
		})))
		require.NoError(t, e.On("never", NewUntypedCallback(func(any) {
			delivered++
		})))

		emitterC <- e
	})
	require.NoError(t, loop.Start())

	e := <-emitterC
	require.NoError(t, e.Emit("blocker", nil))
	<-inFirst

	// Queued behind the in-flight dispatch, then dropped by Quit.
	require.NoError(t, e.Emit("never", nil))
	require.NoError(t, loop.Quit())
	close(release)

	// The in-flight dispatch finished; the queued event was never delivered.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, delivered)
}

func TestLoopLogsDispatchFaultAndContinues(t *testing.T) {
	logged := make(chan string, 1)
	ml := &mockLogger{tapError: func(msg string) {
		select {
		case logged <- msg:
		default:
		}
	}}
	ml.On("Errorf", mock.Anything, mock.Anything).Return()

	var after []int
	done := make(chan struct{})

	loop := NewLoop(ml, func(l *Loop) {
		e, err := l.Emitter()
		require.NoError(t, err)

		require.NoError(t, e.On("n", NewCallback(func(int) {})))
		require.NoError(t, e.On("ok", NewCallback(func(v int) {
			after = append(after, v)
			close(done)
		})))

		require.NoError(t, e.Emit("n", "wrong type"))
		require.NoError(t, e.Emit("ok", 1))
	})

	require.NoError(t, loop.Start())

	select {
	case <-logged:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch fault was not logged")
	}

	<-done
	require.NoError(t, loop.Quit())

	// The faulty event did not take the loop down; the next one was delivered.
	require.Equal(t, []int{1}, after)
	ml.AssertCalled(t, "Errorf", mock.Anything, mock.Anything)
}

func TestQuitWakesParkedLoop(t *testing.T) {
	exited := make(chan struct{})
	ml := &mockLogger{tapDebug: func(msg string) {
		if msg == "loop goroutine exited" {
			close(exited)
		}
	}}

	started := make(chan struct{})
	loop := NewLoop(ml, func(*Loop) { close(started) })
	require.NoError(t, loop.Start())
	<-started

	// Let the loop park on the empty queue before quitting.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, loop.Quit())

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("loop stayed parked after quit")
	}
}
