package stream_test

import (
	"context"
	"testing"

	"github.com/bassista/go_observe/internal/stream"
	"github.com/stretchr/testify/require"
)

func TestLatest_Value_emptyUntilPublished(t *testing.T) {
	t.Parallel()

	l := stream.NewLatest[string]()
	_, ok := l.Value()
	require.False(t, ok)

	l.Publish("a")
	v, ok := l.Value()
	require.True(t, ok)
	require.Equal(t, "a", v)

	l.Publish("b")
	v, _ = l.Value()
	require.Equal(t, "b", v)
}

func TestLatest_replaysCurrentValueToLateSubscriber(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := stream.NewLatest[int]()
	l.Publish(1)
	l.Publish(2)

	r := observe[int](ctx, l.Observable())
	require.Equal(t, 2, receiveSoon(t, r.values))
	notReceiving(t, r.values)
}

func TestLatest_silentWhileEmpty(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := stream.NewLatest[int]()
	r := observe[int](ctx, l.Observable())
	notReceiving(t, r.values)

	l.Publish(7)
	require.Equal(t, 7, receiveSoon(t, r.values))
	notReceiving(t, r.values)
}

func TestLatest_broadcastsInOrderToAllSubscribers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := stream.NewLatest[int]()
	first := observe[int](ctx, l.Observable())
	second := observe[int](ctx, l.Observable())

	const n = 50
	for i := 1; i <= n; i++ {
		l.Publish(i)
	}

	for _, r := range []*recorder[int]{first, second} {
		for i := 1; i <= n; i++ {
			require.Equal(t, i, receiveSoon(t, r.values))
		}
		notReceiving(t, r.values)
	}
}

func TestLatest_subscribersBeforeAndAfterFirstValueAgree(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := stream.NewLatest[string]()
	early := observe[string](ctx, l.Observable())
	l.Publish("v")
	late := observe[string](ctx, l.Observable())

	require.Equal(t, "v", receiveSoon(t, early.values))
	require.Equal(t, "v", receiveSoon(t, late.values))
	notReceiving(t, early.values)
	notReceiving(t, late.values)
}

func TestLatest_cancelStopsOnlyThatSubscriber(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	subCtx, unsubscribe := context.WithCancel(ctx)

	l := stream.NewLatest[int]()
	kept := observe[int](ctx, l.Observable())
	dropped := observe[int](subCtx, l.Observable())

	l.Publish(1)
	require.Equal(t, 1, receiveSoon(t, kept.values))
	require.Equal(t, 1, receiveSoon(t, dropped.values))

	unsubscribe()
	require.ErrorIs(t, receiveSoon(t, dropped.done), context.Canceled)

	l.Publish(2)
	require.Equal(t, 2, receiveSoon(t, kept.values))
	notReceiving(t, dropped.values)

	v, ok := l.Value()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestLatest_neverCompletesOnItsOwn(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := stream.NewLatest[int]()
	l.Publish(1)
	r := observe[int](ctx, l.Observable())
	receiveSoon(t, r.values)
	notReceiving(t, r.done)
}

func TestLatest_First(t *testing.T) {
	t.Parallel()

	l := stream.NewLatest[int]()
	go l.Publish(3)

	v, err := stream.First(context.Background(), l.Observable())
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestLatest_PublishIfEmpty(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := stream.NewLatest[string]()
	r := observe(ctx, l.Observable())

	require.True(t, l.PublishIfEmpty("first"))
	require.False(t, l.PublishIfEmpty("stale"))
	l.Publish("newer")
	require.False(t, l.PublishIfEmpty("stale"))

	require.Equal(t, "first", receiveSoon(t, r.values))
	require.Equal(t, "newer", receiveSoon(t, r.values))
	notReceiving(t, r.values)

	v, _ := l.Value()
	require.Equal(t, "newer", v)
}

func TestLatest_zeroValueIsStillAValue(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := stream.NewLatest[int]()
	l.Publish(0)
	r := observe(ctx, l.Observable())
	require.Equal(t, 0, receiveSoon(t, r.values))
}
