// Package queue serializes write operations so that no two of them ever run
// at the same time and they complete in submission order.
package queue

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/panics"

	"github.com/example/pocket-ledger/internal/logging"
)

// ErrClosed is returned for work submitted after Close
var ErrClosed = errors.New("mutation queue closed")

type job struct {
	run  func() error
	done chan error
}

// Queue runs submitted operations one at a time in FIFO order. A failing or
// panicking operation never blocks the ones queued behind it.
type Queue struct {
	log logrus.FieldLogger

	mu       sync.Mutex
	pending  []job
	running  bool
	busy     bool
	closed   bool
	inflight sync.WaitGroup
}

// New creates an empty queue. A nil logger discards output.
func New(log logrus.FieldLogger) *Queue {
	if log == nil {
		log = logging.Discard()
	}
	return &Queue{log: log}
}

// Submit appends op to the queue and returns a channel that receives its
// result exactly once.
func (q *Queue) Submit(op func() error) <-chan error {
	done := make(chan error, 1)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		done <- ErrClosed
		return done
	}
	q.inflight.Add(1)
	q.pending = append(q.pending, job{run: op, done: done})
	if !q.running {
		q.running = true
		go q.drain()
	}
	q.mu.Unlock()

	return done
}

// Do submits op and waits for it to finish
func (q *Queue) Do(op func() error) error {
	return <-q.Submit(op)
}

// Len reports how many operations are waiting or running
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.pending)
	if q.busy {
		n++
	}
	return n
}

// Close rejects new work and waits for everything already queued to finish
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.inflight.Wait()
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		j := q.pending[0]
		q.pending[0] = job{}
		q.pending = q.pending[1:]
		q.busy = true
		q.mu.Unlock()

		err := q.run(j)

		q.mu.Lock()
		q.busy = false
		q.mu.Unlock()

		j.done <- err
		q.inflight.Done()
	}
}

func (q *Queue) run(j job) (err error) {
	if r := panics.Try(func() { err = j.run() }); r != nil {
		q.log.WithField("panic", r.Value).Error("queued operation panicked")
		return fmt.Errorf("queued operation panicked: %w", r.AsError())
	}
	return err
}

// Enqueue runs op on q and returns its value once it has run
func Enqueue[T any](q *Queue, op func() (T, error)) (T, error) {
	var out T
	err := q.Do(func() error {
		v, err := op()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
