// Package payment simulates the subscription flow: a fixed artificial
// delay followed by a flat token grant. No real payment processor is
// involved.
package payment

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"snapquest/internal/models"
	"snapquest/internal/session"
)

// SubscriptionGrant is the number of tokens credited per subscription.
const SubscriptionGrant = 100

type Service struct {
	sessions *session.Manager
	delay    time.Duration

	subscribe singleflight.Group
}

func NewService(sessions *session.Manager, delay time.Duration) *Service {
	return &Service{sessions: sessions, delay: delay}
}

// Subscribe credits the current user with the subscription grant.
// Concurrent calls for the same user are collapsed into one charge.
func (s *Service) Subscribe(ctx context.Context) (*models.User, error) {
	user, ok := s.sessions.CurrentUser()
	if !ok {
		return nil, models.ErrNotAuthenticated
	}
	v, err, _ := s.subscribe.Do(user.ID, func() (any, error) {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}
		u, ok := s.sessions.CurrentUser()
		if !ok {
			return nil, models.ErrNotAuthenticated
		}
		u.Tokens += SubscriptionGrant
		if err := s.sessions.UpdateUser(u); err != nil {
			return nil, err
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.User), nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
