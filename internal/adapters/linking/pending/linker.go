// Package pending provides a contact linker for deployments where the backend
// has no linking endpoint yet.
package pending

import (
	"context"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/rs/zerolog"
)

type Linker struct {
	Log zerolog.Logger
}

var _ ports.ContactLinker = Linker{}

func (l Linker) LinkContact(ctx context.Context, ticketID domain.TicketID, channel ports.ChannelType, identifier string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.Log.Info().
		Str("ticket_id", string(ticketID)).
		Str("channel", string(channel)).
		Msg("contact linking requested; backend support unavailable")
	return domain.ErrLinkingUnavailable
}
