package service

import (
	"context"
	"errors"

	"github.com/bassista/go_observe/internal/httpclient"
	"github.com/bassista/go_observe/internal/logger"
	"github.com/bassista/go_observe/internal/model"
	"github.com/bassista/go_observe/internal/stream"
	"github.com/samber/ro"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// UserService keeps the current user in memory and publishes it as a stream.
//
// Subscribers to User get the cached value right away when there is one,
// nothing while the cache is empty, and every later update in order.
// A failed fetch leaves the cache untouched and is never pushed to subscribers.
type UserService struct {
	client httpclient.Getter
	url    string
	slot   *stream.Latest[model.User]
	group  singleflight.Group
	ready  chan struct{}
	log    *logrus.Entry
}

// NewUserService returns immediately and loads the user from url in the
// background. ctx bounds that initial request only. If Set or Refresh fills
// the cache first, the initial result is dropped.
func NewUserService(ctx context.Context, client httpclient.Getter, url string) *UserService {
	s := &UserService{
		client: client,
		url:    url,
		slot:   stream.NewLatest[model.User](),
		ready:  make(chan struct{}),
		log:    logger.WithComponent("user-service"),
	}

	stream.Observe(ctx, s.userInfo(),
		func(u model.User) {
			if !s.slot.PublishIfEmpty(u) {
				s.log.Debug("initial user dropped, cache already holds a newer one")
			}
		},
		func(err error) {
			defer close(s.ready)
			if err != nil {
				// The stream stays empty; subscribers cannot tell this from "still loading".
				s.log.Warnf("initial user fetch failed: %v", err)
				return
			}
			s.log.Debug("initial user fetch completed")
		})

	return s
}

// User is the published user stream. It never completes on its own;
// unsubscribe (or cancel the context given to stream.Observe) to stop.
// Callbacks run on the publishing goroutine and must not call Set.
func (s *UserService) User() ro.Observable[model.User] {
	return s.slot.Observable()
}

// Current returns the cached user, if any.
func (s *UserService) Current() (model.User, bool) {
	return s.slot.Value()
}

// Set replaces the cached user and notifies all subscribers.
func (s *UserService) Set(u model.User) {
	s.slot.Publish(u)
}

// Ready is closed once the initial fetch has finished, successfully or not.
func (s *UserService) Ready() <-chan struct{} {
	return s.ready
}

// Refresh fetches the user again and publishes it on success.
// Concurrent calls share one request, which is not tied to any single
// caller's context: a caller giving up returns ctx.Err() while the others
// keep waiting for the shared result. Errors go to callers only;
// subscribers keep the previous value.
func (s *UserService) Refresh(ctx context.Context) error {
	ch := s.group.DoChan("user", func() (any, error) {
		u, err := stream.First(context.WithoutCancel(ctx), s.userInfo())
		if err != nil {
			return nil, err
		}
		s.slot.Publish(u)
		return u, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			if !errors.Is(res.Err, context.Canceled) {
				s.log.WithField("shared", res.Shared).Warnf("user refresh failed: %v", res.Err)
			}
			return res.Err
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *UserService) userInfo() ro.Observable[model.User] {
	return getJSON(s.client, s.url, validUser)
}
