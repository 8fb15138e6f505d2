package uploads

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback. Stop is idempotent; a callback
// that already started may still run to completion.
type Timer interface {
	Stop()
}

// Scheduler runs callbacks on a period or once after a delay.
type Scheduler interface {
	Every(d time.Duration, fn func()) Timer
	After(d time.Duration, fn func()) Timer
}

// RealScheduler runs callbacks on goroutines driven by the runtime timers.
type RealScheduler struct{}

type ticker struct {
	done chan struct{}
	once sync.Once
}

func (t *ticker) Stop() {
	t.once.Do(func() { close(t.done) })
}

func (RealScheduler) Every(d time.Duration, fn func()) Timer {
	t := &ticker{done: make(chan struct{})}
	tk := time.NewTicker(d)

	go func() {
		defer tk.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-tk.C:
				fn()
			}
		}
	}()

	return t
}

type oneShot struct {
	t *time.Timer
}

func (o oneShot) Stop() { o.t.Stop() }

func (RealScheduler) After(d time.Duration, fn func()) Timer {
	return oneShot{t: time.AfterFunc(d, fn)}
}
