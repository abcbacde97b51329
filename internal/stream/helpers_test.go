package stream_test

import (
	"context"
	"testing"
	"time"

	"github.com/bassista/go_observe/internal/stream"
	"github.com/samber/ro"
	"github.com/stretchr/testify/require"
)

const soon = 2 * time.Second

// recorder captures a subscription's callbacks on channels.
type recorder[T any] struct {
	values chan T
	done   chan error
}

func observe[T any](ctx context.Context, src ro.Observable[T]) *recorder[T] {
	r := &recorder[T]{
		values: make(chan T, 64),
		done:   make(chan error, 1),
	}
	stream.Observe(ctx, src,
		func(v T) { r.values <- v },
		func(err error) { r.done <- err })
	return r
}

func receiveSoon[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(soon):
		t.Fatal("no value received in time")
	}
	panic("unreachable")
}

func notReceiving[T any](t *testing.T, ch chan T) {
	t.Helper()
	select {
	case v := <-ch:
		require.Failf(t, "unexpected value", "%v", v)
	case <-time.After(50 * time.Millisecond):
	}
}
