package ports

import (
	"context"

	"github.com/bnema/support-chat-cli/internal/domain"
)

// SessionRepository mirrors the session collection. Load reports
// domain.ErrStateNotFound when nothing usable is persisted, including
// malformed or partially written data.
type SessionRepository interface {
	Load(ctx context.Context) (domain.SessionCollection, error)
	Save(ctx context.Context, collection domain.SessionCollection) error
}
