package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
)

const (
	SessionsKey = "chat/sessions"
	OrderKey    = "chat/order"
	ActiveKey   = "chat/active"
)

// Repository mirrors the session collection as three entries of a
// key-value store, written together and read together.
type Repository struct {
	store ports.KeyValueStore
}

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(store ports.KeyValueStore) *Repository {
	return &Repository{store: store}
}

func (r *Repository) Load(ctx context.Context) (domain.SessionCollection, error) {
	rawSessions, err := r.store.Get(ctx, SessionsKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return domain.SessionCollection{}, domain.ErrStateNotFound
		}
		return domain.SessionCollection{}, fmt.Errorf("read sessions: %w", err)
	}

	rawOrder, err := r.store.Get(ctx, OrderKey)
	if err != nil {
		return domain.SessionCollection{}, r.partial("order", err)
	}

	active, err := r.store.Get(ctx, ActiveKey)
	if err != nil {
		return domain.SessionCollection{}, r.partial("active session", err)
	}

	var sessions map[string]sessionSchema
	if err := json.Unmarshal([]byte(rawSessions), &sessions); err != nil {
		return domain.SessionCollection{}, fmt.Errorf("%w: decode sessions: %v", domain.ErrMalformedState, err)
	}

	var order []string
	if err := json.Unmarshal([]byte(rawOrder), &order); err != nil {
		return domain.SessionCollection{}, fmt.Errorf("%w: decode order: %v", domain.ErrMalformedState, err)
	}

	collection := domain.SessionCollection{
		Sessions:       make(map[domain.ClientID]domain.ChatSession, len(sessions)),
		Order:          make([]domain.ClientID, 0, len(order)),
		ActiveClientID: domain.ClientID(active),
	}
	for id, schema := range sessions {
		session, err := fromSessionSchema(schema)
		if err != nil {
			return domain.SessionCollection{}, fmt.Errorf("%w: decode session %q: %v", domain.ErrMalformedState, id, err)
		}
		collection.Sessions[domain.ClientID(id)] = session
	}
	for _, id := range order {
		collection.Order = append(collection.Order, domain.ClientID(id))
	}

	if err := collection.Validate(); err != nil {
		return domain.SessionCollection{}, fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
	}

	return collection, nil
}

func (r *Repository) Save(ctx context.Context, collection domain.SessionCollection) error {
	sessions := make(map[string]sessionSchema, len(collection.Sessions))
	for id, session := range collection.Sessions {
		sessions[string(id)] = toSessionSchema(session)
	}

	order := make([]string, 0, len(collection.Order))
	for _, id := range collection.Order {
		order = append(order, string(id))
	}

	rawSessions, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	rawOrder, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	if err := r.store.PutAll(ctx, map[string]string{
		SessionsKey: string(rawSessions),
		OrderKey:    string(rawOrder),
		ActiveKey:   string(collection.ActiveClientID),
	}); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}

	return nil
}

func (r *Repository) partial(entry string, err error) error {
	if errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s entry missing", domain.ErrMalformedState, entry)
	}
	return fmt.Errorf("read %s: %w", entry, err)
}
