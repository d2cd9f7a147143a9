package ports

import (
	"context"

	"github.com/bnema/support-chat-cli/internal/domain"
)

type ChannelType string

const (
	ChannelEmail    ChannelType = "email"
	ChannelTelegram ChannelType = "telegram"
)

func (c ChannelType) Valid() bool {
	switch c {
	case ChannelEmail, ChannelTelegram:
		return true
	default:
		return false
	}
}

// ContactLinker associates a contact channel with an existing ticket.
// Implementations return domain.ErrLinkingUnavailable while no real
// endpoint exists.
type ContactLinker interface {
	LinkContact(ctx context.Context, ticketID domain.TicketID, channel ChannelType, identifier string) error
}

// ContactPrompter collects the channel identifier from the user. An empty
// identifier means the user cancelled.
type ContactPrompter interface {
	PromptIdentifier(ctx context.Context, channel ChannelType) (string, error)
}
