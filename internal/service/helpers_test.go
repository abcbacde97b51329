package service

import (
	"context"
	"testing"
	"time"

	"github.com/bassista/go_observe/internal/httpclient"
	"github.com/bassista/go_observe/internal/stream"
	"github.com/samber/ro"
	"github.com/stretchr/testify/require"
)

const soon = 2 * time.Second

type getterFunc func(ctx context.Context, url string) (*httpclient.Response, error)

func (f getterFunc) Get(ctx context.Context, url string) (*httpclient.Response, error) {
	return f(ctx, url)
}

func okBody(body string) *httpclient.Response {
	return &httpclient.Response{StatusCode: 200, Body: []byte(body)}
}

type subscription[T any] struct {
	values chan T
	done   chan error
}

func subscribe[T any](ctx context.Context, src ro.Observable[T]) *subscription[T] {
	s := &subscription[T]{values: make(chan T, 16), done: make(chan error, 1)}
	stream.Observe(ctx, src,
		func(v T) { s.values <- v },
		func(err error) { s.done <- err })
	return s
}

func receiveSoon[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(soon):
		t.Fatal("nothing received in time")
	}
	panic("unreachable")
}

func notReceiving[T any](t *testing.T, ch chan T) {
	t.Helper()
	select {
	case v := <-ch:
		require.Failf(t, "unexpected receive", "%v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func waitReady(t *testing.T, s *UserService) {
	t.Helper()
	select {
	case <-s.Ready():
	case <-time.After(soon):
		t.Fatal("initial fetch did not finish in time")
	}
}
