package stream

import (
	"sync"

	"github.com/samber/ro"
)

// Latest is a multicast stream holding at most one value.
//
// A subscriber attaching after a publication first receives the most recent
// value, then every later one. A subscriber attaching before the first
// publication receives nothing until it happens. Latest never emits a
// placeholder for "no value yet" and never completes by itself.
//
// It is a behavior subject seeded with nil and filtered for non-nil, so the
// empty state never reaches subscribers. Publications are delivered
// synchronously in publication order; subscriber callbacks must not publish
// to the same Latest.
type Latest[T any] struct {
	pubMu sync.Mutex // serializes delivery

	mu      sync.RWMutex
	current *T

	sink   ro.Observer[*T]
	values ro.Observable[T]
}

// NewLatest returns an empty Latest stream.
func NewLatest[T any]() *Latest[T] {
	subject := ro.NewBehaviorSubject[*T](nil)

	var src ro.Observable[*T] = subject
	return &Latest[T]{
		sink: subject,
		values: ro.Pipe2(
			src,
			ro.Filter(func(v *T) bool { return v != nil }),
			ro.Map(func(v *T) T { return *v }),
		),
	}
}

// Publish replaces the held value and notifies every subscriber.
func (l *Latest[T]) Publish(v T) {
	l.pubMu.Lock()
	defer l.pubMu.Unlock()
	l.sink.Next(l.swap(v))
}

// PublishIfEmpty publishes v only when nothing has been published yet.
// It reports whether v was published.
func (l *Latest[T]) PublishIfEmpty(v T) bool {
	l.pubMu.Lock()
	defer l.pubMu.Unlock()
	if _, ok := l.Value(); ok {
		return false
	}
	l.sink.Next(l.swap(v))
	return true
}

func (l *Latest[T]) swap(v T) *T {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = &v
	return l.current
}

// Value returns the held value and whether one has been published.
func (l *Latest[T]) Value() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current == nil {
		var zero T
		return zero, false
	}
	return *l.current, true
}

// Observable is the published stream.
func (l *Latest[T]) Observable() ro.Observable[T] {
	return l.values
}
