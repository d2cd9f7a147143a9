package ports

import (
	"context"

	"github.com/bnema/support-chat-cli/internal/domain"
)

type TicketMetadata struct {
	ClientUserID string
	ChatClientID domain.ClientID
}

type CreateTicketRequest struct {
	Content  string
	UserID   string
	Metadata TicketMetadata
}

type CreateTicketResult struct {
	TicketID      domain.TicketID
	AssignedAgent string
}

type AppendMessageRequest struct {
	TicketID domain.TicketID
	SenderID string
	Content  string
	Metadata TicketMetadata
}

// RemoteMessage is a ticket message as reported by the backend. Timestamp is
// kept raw; callers decide how to interpret it.
type RemoteMessage struct {
	ID         string
	SenderType string
	Content    string
	Timestamp  string
	Metadata   map[string]string
}

type TicketAssignment struct {
	AssignedAgent string
}

// SupportAPI is the backend support-ticket service.
type SupportAPI interface {
	CreateTicket(ctx context.Context, req CreateTicketRequest) (CreateTicketResult, error)
	AppendMessage(ctx context.Context, req AppendMessageRequest) error
	ListMessages(ctx context.Context, ticketID domain.TicketID, limit int) ([]RemoteMessage, error)
	GetTicket(ctx context.Context, ticketID domain.TicketID) (TicketAssignment, error)
}
