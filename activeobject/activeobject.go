// Package activeobject implements the active object concurrency pattern: a
// single goroutine bound to one input queue, serially applying a function to
// each item until the queue is closed and drained.
package activeobject

import (
	"sync"

	"GraphCompute/queue"
)

// ActiveObject runs fn against every item popped from in, one at a time, on
// its own goroutine, until in is closed and drained or Stop is called.
type ActiveObject[T any] struct {
	in      *queue.BoundedQueue[T]
	fn      func(T)
	stopped chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New constructs an ActiveObject over the given queue. Start must be called
// to begin processing.
func New[T any](in *queue.BoundedQueue[T], fn func(T)) *ActiveObject[T] {
	return &ActiveObject[T]{
		in:      in,
		fn:      fn,
		stopped: make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (a *ActiveObject[T]) Start() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for {
			item, ok := a.in.Pop()
			if !ok {
				return
			}
			a.fn(item)
		}
	}()
}

// Stop closes the input queue and blocks until the worker has drained it and
// exited. Stop is idempotent.
func (a *ActiveObject[T]) Stop() {
	a.once.Do(func() {
		a.in.Close()
	})
	a.wg.Wait()
}
