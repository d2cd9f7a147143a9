package application

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/rs/zerolog"
)

const (
	guestIDKey    = "guest_id"
	guestIDPrefix = "guest_"

	// PlaceholderGuestID is returned when the storage medium is unusable.
	PlaceholderGuestID = "guest_anonymous"
)

type IdentityProvider struct {
	store ports.KeyValueStore
	ids   ports.IDGenerator
	log   zerolog.Logger

	mu     sync.Mutex
	cached string
}

func NewIdentityProvider(store ports.KeyValueStore, ids ports.IDGenerator, log zerolog.Logger) *IdentityProvider {
	if ids == nil {
		ids = ports.UUIDGenerator{}
	}

	return &IdentityProvider{store: store, ids: ids, log: log}
}

// GetOrCreateGuestID returns the persisted guest identity, creating it on
// first use. It never fails: an unusable medium yields PlaceholderGuestID.
func (p *IdentityProvider) GetOrCreateGuestID(ctx context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached
	}
	if p.store == nil {
		return PlaceholderGuestID
	}

	existing, err := p.store.Get(ctx, guestIDKey)
	switch {
	case err == nil && existing != "":
		p.cached = existing
		return existing
	case err != nil && !errors.Is(err, domain.ErrKeyNotFound):
		p.log.Warn().Err(err).Msg("guest identity unreadable, using placeholder")
		return PlaceholderGuestID
	}

	guestID := guestIDPrefix + p.ids.NewID()
	if err := p.store.Put(ctx, guestIDKey, guestID); err != nil {
		p.log.Warn().Err(err).Msg("guest identity not persisted, using placeholder")
		return PlaceholderGuestID
	}

	p.cached = guestID
	return guestID
}
