package application

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tomlrepo "github.com/bnema/support-chat-cli/internal/adapters/repo/toml"
	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

// stepClock advances one second on every read.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: testEpoch}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now
	c.now = c.now.Add(time.Second)
	return now
}

type sequenceIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func newSequenceIDs(prefix string) *sequenceIDs {
	return &sequenceIDs{prefix: prefix}
}

func (s *sequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	return fmt.Sprintf("%s%d", s.prefix, s.next)
}

// memoryRepository is an in-memory ports.SessionRepository that records saves.
type memoryRepository struct {
	mu      sync.Mutex
	stored  *domain.SessionCollection
	loadErr error
	saveErr error
	saves   int
}

func (r *memoryRepository) Load(context.Context) (domain.SessionCollection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loadErr != nil {
		return domain.SessionCollection{}, r.loadErr
	}
	if r.stored == nil {
		return domain.SessionCollection{}, domain.ErrStateNotFound
	}
	return r.stored.Clone(), nil
}

func (r *memoryRepository) Save(_ context.Context, collection domain.SessionCollection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	snapshot := collection.Clone()
	r.stored = &snapshot
	return nil
}

func (r *memoryRepository) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *memoryRepository) last() domain.SessionCollection {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return domain.SessionCollection{}
	}
	return r.stored.Clone()
}

func newTestStore(t *testing.T, repo *memoryRepository) *SessionStore {
	t.Helper()
	return NewSessionStore(context.Background(), repo, newStepClock(), newSequenceIDs("c"), zerolog.Nop())
}

func newTOMLRepository(t *testing.T, dir string) *tomlrepo.Repository {
	t.Helper()

	cfg := viper.New()
	cfg.Set(tomlrepo.SessionsPathKey, filepath.Join(dir, "sessions.toml"))
	repo, err := tomlrepo.NewRepository(cfg)
	require.NoError(t, err)
	return repo
}

func mockAnyContext() interface{} {
	return mock.Anything
}
