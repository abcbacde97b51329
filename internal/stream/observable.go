package stream

import (
	"context"
	"errors"
	"sync"

	"github.com/samber/ro"
)

// ErrNoValue is returned by [First] when a stream completes without emitting.
var ErrNoValue = errors.New("stream completed without a value")

// Single returns a lazy stream that calls fetch once per subscription,
// emits the result and completes. Nothing happens until it is subscribed.
// Unsubscribing cancels the context passed to fetch.
func Single[T any](fetch func(ctx context.Context) (T, error)) ro.Observable[T] {
	return ro.NewObservableWithContext(func(ctx context.Context, destination ro.Observer[T]) ro.Teardown {
		ctx, cancel := context.WithCancel(ctx)
		go func() {
			v, err := fetch(ctx)
			if err != nil {
				destination.Error(err)
				return
			}
			if err := ctx.Err(); err != nil {
				destination.Error(err)
				return
			}
			destination.Next(v)
			destination.Complete()
		}()
		return func() { cancel() }
	})
}

// TryMap is ro.Map for projections that can fail. The first error
// terminates the stream with that error and unsubscribes from the source.
func TryMap[T, R any](project func(T) (R, error)) func(ro.Observable[T]) ro.Observable[R] {
	return func(source ro.Observable[T]) ro.Observable[R] {
		return ro.NewObservableWithContext(func(ctx context.Context, destination ro.Observer[R]) ro.Teardown {
			sub := source.SubscribeWithContext(ctx, ro.NewObserver(
				func(v T) {
					r, err := project(v)
					if err != nil {
						destination.Error(err)
						return
					}
					destination.Next(r)
				},
				destination.Error,
				destination.Complete,
			))
			return sub.Unsubscribe
		})
	}
}

// Observe subscribes to src until it terminates or ctx is done.
//
// 'complete' is called exactly once: with nil when src completes, with the
// failure when it errors, or with ctx.Err() when ctx is cancelled first.
// 'next' and 'complete' are never called concurrently and 'next' is never
// called after 'complete'. Values src emits synchronously on subscription
// are delivered before Observe returns.
func Observe[T any](ctx context.Context, src ro.Observable[T], next func(T), complete func(error)) {
	if next == nil {
		next = func(T) {}
	}
	if complete == nil {
		complete = func(error) {}
	}

	var (
		mu   sync.Mutex
		done bool
		stop = make(chan struct{})
	)
	finish := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		done = true
		close(stop)
		complete(err)
	}

	if err := ctx.Err(); err != nil {
		finish(err)
		return
	}

	sub := src.SubscribeWithContext(ctx, ro.NewObserver(
		func(v T) {
			mu.Lock()
			defer mu.Unlock()
			if !done {
				next(v)
			}
		},
		finish,
		func() { finish(nil) },
	))

	go func() {
		select {
		case <-ctx.Done():
			finish(ctx.Err())
		case <-stop:
		}
		sub.Unsubscribe()
	}()
}

// First subscribes to src and blocks until the first item arrives,
// the stream terminates, or ctx is done.
func First[T any](ctx context.Context, src ro.Observable[T]) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	out := make(chan result, 1)
	send := func(r result) {
		select {
		case out <- r:
		default:
		}
	}
	Observe(ctx, src,
		func(v T) { send(result{v: v}) },
		func(err error) {
			if err == nil {
				err = ErrNoValue
			}
			send(result{err: err})
		})

	r := <-out
	return r.v, r.err
}

// Collect subscribes to src and blocks until it terminates,
// returning every item received in order.
func Collect[T any](ctx context.Context, src ro.Observable[T]) ([]T, error) {
	var items []T
	done := make(chan error, 1)
	Observe(ctx, src,
		func(v T) { items = append(items, v) },
		func(err error) { done <- err })

	err := <-done
	return items, err
}
