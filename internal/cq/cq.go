// Package cq implements the unbounded FIFO queue that serializes a
// connection's incoming messages and outgoing requests onto a single
// goroutine.
package cq

import "sync"

// Flush runs every function in queue in order and collects the errors
// that they return. If stop is not nil, it is checked before each
// function and the remainder of the queue is dropped once it returns
// true.
func Flush(queue []func() error, stop func() bool) (errs []error) {
	for _, ev := range queue {
		if (stop != nil) && stop() {
			break
		}

		err := ev()
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

type Queue[T any] struct {
	done  chan struct{}
	close sync.Once

	add chan T
	get chan []T
}

func New[T any]() *Queue[T] {
	q := Queue[T]{
		done: make(chan struct{}),
		add:  make(chan T),
		get:  make(chan []T),
	}
	go q.run()

	return &q
}

func (q *Queue[T]) Stop() {
	q.close.Do(func() {
		close(q.done)
	})
}

// Done is closed when the queue is stopped.
func (q *Queue[T]) Done() <-chan struct{} {
	return q.done
}

// Push adds v to the queue. It returns false without blocking forever
// if the queue has been stopped.
func (q *Queue[T]) Push(v T) bool {
	select {
	case <-q.done:
		return false
	case q.add <- v:
		return true
	}
}

// Get yields everything that has been added since the last receive
// as a single batch, in the order that it was added.
func (q *Queue[T]) Get() <-chan []T {
	return q.get
}

func (q *Queue[T]) run() {
	var s []T
	var get chan []T

	for {
		select {
		case <-q.done:
			return

		case v := <-q.add:
			s = append(s, v)
			get = q.get

		case get <- s:
			s = nil
			get = nil
		}
	}
}
