package client

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a prompt is sent.
const DefaultDebounce = 900 * time.Millisecond

// Debouncer delivers only the last value pushed within a quiet period.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	value   T
	pending bool
	gen     uint64
	stopped bool
	running sync.WaitGroup
}

func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Push replaces the pending value and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.value = v
	d.pending = true
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush delivers a pending value now. It reports whether one was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return false
	}
	v := d.take()
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fn(v)
	return true
}

// Stop drops any pending value; later pushes are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.take()
}

// Wait blocks until deliveries that have already started return. After Stop
// no new delivery can start, so Stop then Wait drains the debouncer.
func (d *Debouncer[T]) Wait() {
	d.running.Wait()
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// A later Push, Flush or Stop supersedes this timer.
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fn(v)
}

// take clears the pending state. Callers hold mu.
func (d *Debouncer[T]) take() T {
	v := d.value
	var zero T
	d.value = zero
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return v
}
