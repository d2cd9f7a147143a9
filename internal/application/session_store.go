package application

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/rs/zerolog"
)

// SessionStore is the single writer of chat session state. Every committed
// mutation is written through the repository before subscribers hear of it.
type SessionStore struct {
	repo  ports.SessionRepository
	clock ports.Clock
	ids   ports.IDGenerator
	log   zerolog.Logger

	mu          sync.Mutex
	state       domain.SessionCollection
	subscribers map[int]func(domain.SessionCollection)
	nextSub     int
}

// NewSessionStore loads the persisted collection once, seeding a fresh
// single-session collection when nothing usable is stored.
func NewSessionStore(ctx context.Context, repo ports.SessionRepository, clock ports.Clock, ids ports.IDGenerator, log zerolog.Logger) *SessionStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if ids == nil {
		ids = ports.UUIDGenerator{}
	}

	s := &SessionStore{
		repo:        repo,
		clock:       clock,
		ids:         ids,
		log:         log,
		subscribers: map[int]func(domain.SessionCollection){},
	}

	collection, err := repo.Load(ctx)
	if err == nil {
		for id, session := range collection.Sessions {
			session.ResetTransient()
			collection.Sessions[id] = session
		}
		if collection.ActiveClientID == "" {
			collection.ActiveClientID = collection.Order[0]
		}
		s.state = collection
		return s
	}

	switch {
	case errors.Is(err, domain.ErrMalformedState):
		log.Warn().Err(err).Msg("discarding malformed session state")
	case errors.Is(err, domain.ErrStateNotFound):
		log.Debug().Msg("no session state persisted, seeding a fresh session")
	default:
		log.Error().Err(err).Msg("load session state failed, seeding a fresh session")
	}

	s.state = domain.NewSessionCollection()
	s.CreateSession(ctx)

	return s
}

func (s *SessionStore) CreateSession(ctx context.Context) domain.ClientID {
	id := domain.ClientID(s.ids.NewID())

	_ = s.mutate(ctx, func(state *domain.SessionCollection) (bool, error) {
		state.Sessions[id] = domain.NewChatSession(id, s.clock.Now())
		state.Order = append(state.Order, id)
		state.ActiveClientID = id
		return true, nil
	})

	return id
}

func (s *SessionStore) SelectSession(ctx context.Context, id domain.ClientID) error {
	return s.mutate(ctx, func(state *domain.SessionCollection) (bool, error) {
		if !state.Contains(id) {
			return false, domain.ErrSessionNotFound
		}
		if state.ActiveClientID == id {
			return false, nil
		}
		state.ActiveClientID = id
		return true, nil
	})
}

func (s *SessionStore) DeleteSession(ctx context.Context, id domain.ClientID) error {
	return s.mutate(ctx, func(state *domain.SessionCollection) (bool, error) {
		if !state.Contains(id) {
			return false, domain.ErrSessionNotFound
		}
		if len(state.Order) <= 1 {
			return false, domain.ErrLastSession
		}

		delete(state.Sessions, id)
		order := make([]domain.ClientID, 0, len(state.Order)-1)
		for _, existing := range state.Order {
			if existing != id {
				order = append(order, existing)
			}
		}
		state.Order = order

		if state.ActiveClientID == id {
			state.ActiveClientID = ""
			if len(order) > 0 {
				state.ActiveClientID = order[0]
			}
		}

		return true, nil
	})
}

// UpdateSession merges patch into the named session. A missing session is a
// silent no-op: it was deleted while a request was in flight.
func (s *SessionStore) UpdateSession(ctx context.Context, id domain.ClientID, patch domain.SessionPatch) error {
	return s.UpdateSessionWhen(ctx, id, nil, patch)
}

// UpdateSessionWhen applies patch only if cond accepts the current session,
// otherwise it returns errConditionNotMet and leaves the session untouched.
func (s *SessionStore) UpdateSessionWhen(ctx context.Context, id domain.ClientID, cond func(domain.ChatSession) bool, patch domain.SessionPatch) error {
	return s.mutate(ctx, func(state *domain.SessionCollection) (bool, error) {
		session, ok := state.Sessions[id]
		if !ok {
			return false, nil
		}
		if cond != nil && !cond(session) {
			return false, errConditionNotMet
		}

		err := session.Apply(patch)
		state.Sessions[id] = session
		return true, err
	})
}

func (s *SessionStore) AppendMessage(ctx context.Context, id domain.ClientID, message domain.Message) error {
	_, err := s.MergeMessages(ctx, id, []domain.Message{message})
	return err
}

// MergeMessages reconciles incoming into the session history and returns
// how many messages were new.
func (s *SessionStore) MergeMessages(ctx context.Context, id domain.ClientID, incoming []domain.Message) (int, error) {
	added := 0

	err := s.mutate(ctx, func(state *domain.SessionCollection) (bool, error) {
		session, ok := state.Sessions[id]
		if !ok {
			return false, nil
		}

		merged := domain.MergeMessages(session.Messages, incoming)
		added = len(merged) - len(session.Messages)
		if added == 0 {
			return false, nil
		}

		session.Messages = merged
		state.Sessions[id] = session
		return true, nil
	})

	return added, err
}

func (s *SessionStore) Session(id domain.ClientID) (domain.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.state.Sessions[id]
	if !ok {
		return domain.ChatSession{}, false
	}
	return session.Clone(), true
}

func (s *SessionStore) Active() (domain.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.state.Active()
	if !ok {
		return domain.ChatSession{}, false
	}
	return session.Clone(), true
}

func (s *SessionStore) Snapshot() domain.SessionCollection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every committed
// mutation. The returned func removes the subscription.
func (s *SessionStore) Subscribe(fn func(domain.SessionCollection)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

var errConditionNotMet = errors.New("session update condition not met")

func (s *SessionStore) mutate(ctx context.Context, fn func(state *domain.SessionCollection) (bool, error)) error {
	s.mu.Lock()

	changed, err := fn(&s.state)
	if !changed {
		s.mu.Unlock()
		return err
	}

	// Persist even when the caller's request context has been cancelled.
	if saveErr := s.repo.Save(context.WithoutCancel(ctx), s.state); saveErr != nil {
		s.log.Warn().Err(saveErr).Msg("persist session state failed")
	}

	snapshot := s.state.Clone()
	subscribers := make([]func(domain.SessionCollection), 0, len(s.subscribers))
	for _, subscriber := range s.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	s.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(snapshot)
	}

	return err
}
