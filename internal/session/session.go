// Package session owns the current authenticated user: an in-memory mirror
// of the durable "user" record plus the simulated identity-provider login.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"snapquest/internal/models"
	"snapquest/internal/store"
)

const (
	demoName   = "Demo User"
	demoEmail  = "demo@example.com"
	demoAvatar = "https://ui-avatars.com/api/?name=Demo+User"
)

// Manager holds the single current user for this process. It is an explicit
// object injected into every component that needs the session rather than
// shared module state, so each test can construct its own.
type Manager struct {
	store store.Store
	delay time.Duration

	mu      sync.Mutex
	current *models.User

	login singleflight.Group
}

type Option func(*Manager)

// WithLoginDelay sets the artificial identity-provider latency.
func WithLoginDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

func NewManager(st store.Store, opts ...Option) *Manager {
	m := &Manager{store: st}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentUser returns the in-memory user if set, otherwise hydrates it from
// the durable store. The second return is false when nobody is logged in.
func (m *Manager) CurrentUser() (*models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		u := *m.current
		return &u, true
	}
	var u models.User
	if err := m.store.Read(store.KeyUser, &u); err != nil {
		return nil, false
	}
	m.current = &u
	out := u
	return &out, true
}

// Login simulates an identity-provider round trip and establishes a fresh
// user with zero tokens and streak. Concurrent calls are collapsed into a
// single in-flight login.
func (m *Manager) Login(ctx context.Context) (*models.User, error) {
	v, err, _ := m.login.Do("login", func() (any, error) {
		if err := m.wait(ctx); err != nil {
			return nil, err
		}
		u := &models.User{
			ID:     "user-" + uuid.NewString(),
			Name:   demoName,
			Email:  demoEmail,
			Avatar: demoAvatar,
		}
		if err := m.store.Write(store.KeyUser, u); err != nil {
			return nil, fmt.Errorf("persist user: %w", err)
		}
		m.mu.Lock()
		m.current = u
		m.mu.Unlock()
		out := *u
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.User), nil
}

// Logout clears both the in-memory mirror and the durable record.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return m.store.Delete(store.KeyUser)
}

// UpdateUser overwrites the session user verbatim. The caller is
// responsible for handing in a consistent record.
func (m *Manager) UpdateUser(u *models.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	if err := m.store.Write(store.KeyUser, u); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	cp := *u
	m.mu.Lock()
	m.current = &cp
	m.mu.Unlock()
	return nil
}

func (m *Manager) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
