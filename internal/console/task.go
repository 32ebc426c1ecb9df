package console

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Loop runs continuations on the single UI event loop.
type Loop interface {
	Post(fn func())
}

// Queue is a channel-backed Loop. The host drains C() on its event loop.
type Queue struct {
	ch chan func()
}

// NewQueue returns a Queue buffering up to size pending continuations.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 16
	}
	return &Queue{ch: make(chan func(), size)}
}

// Post enqueues fn. It blocks while the queue is full.
func (q *Queue) Post(fn func()) { q.ch <- fn }

// C exposes pending continuations.
func (q *Queue) C() <-chan func() { return q.ch }

// Handlers are the settlement callbacks of a Task. Exactly one of OnSuccess
// and OnFailure runs, then OnSettled, all on the Loop.
type Handlers[T any] struct {
	OnSuccess func(T)
	OnFailure func(error)
	OnSettled func()
}

// Task is an in-flight asynchronous operation.
type Task struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// ID identifies the task in logs.
func (t *Task) ID() string { return t.id }

// Cancel aborts the work; the task then settles through OnFailure.
func (t *Task) Cancel() { t.cancel() }

// Done is closed once all handlers have run.
func (t *Task) Done() <-chan struct{} { return t.done }

// Go runs work on its own goroutine and posts its settlement to loop. A
// positive timeout bounds the work.
func Go[T any](ctx context.Context, loop Loop, timeout time.Duration, work func(context.Context) (T, error), h Handlers[T]) *Task {
	if ctx == nil {
		ctx = context.Background()
	}
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	t := &Task{id: uuid.NewString(), cancel: cancel, done: make(chan struct{})}
	go func() {
		v, err := runWork(ctx, work)
		cancel()
		loop.Post(func() {
			defer close(t.done)
			if err != nil {
				if h.OnFailure != nil {
					h.OnFailure(err)
				}
			} else if h.OnSuccess != nil {
				h.OnSuccess(v)
			}
			if h.OnSettled != nil {
				h.OnSettled()
			}
		})
	}()
	return t
}

func runWork[T any](ctx context.Context, work func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	v, err = work(ctx)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return v, err
}
