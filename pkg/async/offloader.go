package async

import (
	"context"
	"errors"
	"fmt"
)

// Offloader executes a task somewhere other than the calling goroutine and
// waits for it.
type Offloader interface {
	Do(ctx context.Context, name string, task func()) error
}

// Run executes fn on o and returns its result.
func Run[T any](ctx context.Context, o Offloader, name string, fn func() T) (T, error) {
	var zero T
	out := make(chan T, 1)

	if err := o.Do(ctx, name, func() { out <- fn() }); err != nil {
		return zero, err
	}

	select {
	case v := <-out:
		return v, nil
	default:
		return zero, errors.Join(ErrWorkerFailed, errors.New("task finished without a result"))
	}
}

// Inline runs tasks on the caller's goroutine.
type Inline struct{}

// Do implements Offloader.
func (Inline) Do(ctx context.Context, _ string, task func()) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrCancelled, err)
	}
	return safeCall(task)
}

func safeCall(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(ErrWorkerFailed, fmt.Errorf("panic: %v", r))
		}
	}()
	task()
	return nil
}
