package session

import (
	"sync"
	"time"
)

// RestTimer counts down rest periods in whole seconds. Only one countdown runs
// at a time; starting a new one stops the previous. Nothing is persisted.
type RestTimer struct {
	Tick time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

func NewRestTimer() *RestTimer {
	return &RestTimer{Tick: time.Second}
}

// Start begins a countdown from seconds. The returned channel yields the
// remaining seconds, starting with seconds itself and ending with 0, and is
// closed when the countdown ends or is superseded.
func (r *RestTimer) Start(seconds int) <-chan int {
	r.mu.Lock()
	if r.stop != nil {
		close(r.stop)
	}
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	out := make(chan int)
	go r.run(seconds, stop, out)
	return out
}

// Stop ends the running countdown, if any.
func (r *RestTimer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}

func (r *RestTimer) run(remaining int, stop chan struct{}, out chan<- int) {
	defer close(out)
	if remaining < 0 {
		remaining = 0
	}

	ticker := time.NewTicker(r.Tick)
	defer ticker.Stop()

	for {
		select {
		case out <- remaining:
		case <-stop:
			return
		}
		if remaining == 0 {
			r.finish(stop)
			return
		}

		select {
		case <-ticker.C:
			remaining--
		case <-stop:
			return
		}
	}
}

// finish forgets stop if it still belongs to the running countdown.
func (r *RestTimer) finish(stop chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop == stop {
		r.stop = nil
	}
}
