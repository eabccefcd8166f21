// Package missions generates and tracks activity missions. Durable state
// lives in the key-value store under "missions"; the most recently
// generated mission is additionally held in a single volatile slot so it
// stays retrievable when the durable write failed or eviction removed it.
package missions

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"snapquest/internal/models"
	"snapquest/internal/session"
	"snapquest/internal/store"
)

const (
	// GenerateCost is debited from the current user per generation.
	GenerateCost = 1
	// RetentionCap bounds the durable collection; oldest entries are
	// evicted first.
	RetentionCap = 20
)

type Service struct {
	store    store.Store
	sessions *session.Manager
	log      *slog.Logger
	delay    time.Duration

	mu   sync.Mutex
	last *models.Mission

	generate singleflight.Group

	// overridable for tests
	now  func() time.Time
	intn func(int) int
}

type Option func(*Service)

// WithGenerateDelay sets the artificial mission-generation latency.
func WithGenerateDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRand(intn func(int) int) Option {
	return func(s *Service) { s.intn = intn }
}

func NewService(st store.Store, sessions *session.Manager, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    st,
		sessions: sessions,
		log:      log,
		now:      time.Now,
		intn:     rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces a new mission for the uploaded image. A logged-in user
// pays one token; without a user the mission is owned by a synthesized
// guest id. The mission is cached in the volatile slot before the durable
// append, and a durable write failure is logged, not surfaced - the
// mission is still returned. Concurrent calls for the same upload collapse
// into one generation.
func (s *Service) Generate(ctx context.Context, imageURL string, mt models.MissionType) (*models.Mission, error) {
	if mt == "" {
		mt = models.MissionTypeRandom
	}
	key := fmt.Sprintf("%s|%s", imageURL, mt)
	v, err, _ := s.generate.Do(key, func() (any, error) {
		return s.generateOne(ctx, imageURL, mt)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Mission), nil
}

func (s *Service) generateOne(ctx context.Context, imageURL string, mt models.MissionType) (*models.Mission, error) {
	if user, ok := s.sessions.CurrentUser(); ok && user.Tokens < GenerateCost {
		return nil, models.ErrInsufficientTokens
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	// the debit comes after every fallible step so an abandoned
	// generation never costs a token
	userID := "guest-" + uuid.NewString()
	if user, ok := s.sessions.CurrentUser(); ok {
		if user.Tokens < GenerateCost {
			return nil, models.ErrInsufficientTokens
		}
		user.Tokens -= GenerateCost
		if err := s.sessions.UpdateUser(user); err != nil {
			return nil, err
		}
		userID = user.ID
	}

	entry := pickEntry(mt, s.intn)
	mission := &models.Mission{
		ID:          "mission-" + uuid.NewString(),
		UserID:      userID,
		Title:       entry.title,
		Description: entry.description,
		ImageURL:    imageURL,
		CreatedAt:   s.now(),
		MissionType: mt,
	}

	cp := *mission
	s.mu.Lock()
	s.last = &cp
	s.mu.Unlock()

	if err := s.appendDurable(mission); err != nil {
		s.log.Warn("could not persist mission, serving from memory",
			slog.String("mission_id", mission.ID), slog.Any("err", err))
	}
	return mission, nil
}

func (s *Service) appendDurable(m *models.Mission) error {
	all, err := s.readAll()
	if err != nil {
		return err
	}
	all = append(all, *m)
	if len(all) > RetentionCap {
		all = all[len(all)-RetentionCap:]
	}
	return s.store.Write(store.KeyMissions, all)
}

// Complete marks a mission done and recomputes the user's streak. The
// durable collection is checked first, then the volatile last-generated
// slot; either way the completed mission is written back durably.
// Completing an already-completed mission is a no-op on the streak.
func (s *Service) Complete(missionID string) (*models.User, error) {
	user, ok := s.sessions.CurrentUser()
	if !ok {
		return nil, models.ErrNotAuthenticated
	}

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	found := false
	for i := range all {
		if all[i].ID != missionID {
			continue
		}
		if all[i].Completed {
			return user, nil
		}
		all[i].Completed = true
		if err := s.store.Write(store.KeyMissions, all); err != nil {
			return nil, fmt.Errorf("persist missions: %w", err)
		}
		s.syncSlot(&all[i])
		found = true
		break
	}
	if !found {
		s.mu.Lock()
		last := s.last
		s.mu.Unlock()
		if last == nil || last.ID != missionID {
			return nil, models.ErrMissionNotFound
		}
		if last.Completed {
			return user, nil
		}
		cp := *last
		cp.Completed = true
		// the slot only exists because the durable write failed or the
		// entry was evicted; write the completion through this time
		if err := s.appendDurable(&cp); err != nil {
			return nil, fmt.Errorf("persist missions: %w", err)
		}
		s.mu.Lock()
		s.last = &cp
		s.mu.Unlock()
	}

	now := s.now()
	user.Streak = NextStreak(user.Streak, user.LastMissionDate, now)
	user.LastMissionDate = &now
	if err := s.sessions.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) syncSlot(m *models.Mission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last != nil && s.last.ID == m.ID {
		cp := *m
		s.last = &cp
	}
}

// UserMissions returns the current user's missions from the durable
// collection, plus the volatile slot when it belongs to the user and was
// lost to a failed write or eviction.
func (s *Service) UserMissions() ([]models.Mission, error) {
	user, ok := s.sessions.CurrentUser()
	if !ok {
		return nil, nil
	}
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	var out []models.Mission
	seen := map[string]bool{}
	for _, m := range all {
		if m.UserID == user.ID {
			out = append(out, m)
			seen[m.ID] = true
		}
	}
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last != nil && last.UserID == user.ID && !seen[last.ID] {
		out = append(out, *last)
	}
	return out, nil
}

// Get resolves a mission by id, volatile slot first.
func (s *Service) Get(missionID string) (*models.Mission, bool) {
	s.mu.Lock()
	if s.last != nil && s.last.ID == missionID {
		cp := *s.last
		s.mu.Unlock()
		return &cp, true
	}
	s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, false
	}
	for i := range all {
		if all[i].ID == missionID {
			cp := all[i]
			return &cp, true
		}
	}
	return nil, false
}

func (s *Service) readAll() ([]models.Mission, error) {
	var all []models.Mission
	if err := s.store.Read(store.KeyMissions, &all); err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return all, nil
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
