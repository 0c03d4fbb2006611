/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigs

import (
	"context"
	"fmt"
)

// Future is the result of an operation running in the background.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn in a new goroutine and returns its Future.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		f.value, f.err = fn()
	}()

	return f
}

// Done is closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get waits for the result. It stops waiting when ctx is done; the operation itself is cancelled only
// through the context it was started with.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T

		return zero, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
}

// Then passes the result to callback once it is available.
func (f *Future[T]) Then(callback func(T, error)) {
	go func() {
		<-f.done

		callback(f.value, f.err)
	}()
}
