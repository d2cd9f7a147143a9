package kv

import (
	"time"

	"github.com/bnema/support-chat-cli/internal/domain"
)

type sessionSchema struct {
	ClientID     string          `json:"clientId"`
	TicketID     string          `json:"ticketId,omitempty"`
	Messages     []messageSchema `json:"messages"`
	CurrentAgent string          `json:"currentAgent,omitempty"`
	Title        string          `json:"title"`
	IsLoading    bool            `json:"isLoading"`
	IsLinking    bool            `json:"isLinking"`
	LinkStatus   string          `json:"linkStatus,omitempty"`
}

type messageSchema struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	AgentName string `json:"agentName,omitempty"`
	Timestamp string `json:"timestamp"`
}

func toSessionSchema(session domain.ChatSession) sessionSchema {
	messages := make([]messageSchema, 0, len(session.Messages))
	for _, message := range session.Messages {
		messages = append(messages, messageSchema{
			ID:        string(message.ID),
			Sender:    string(message.Sender),
			Text:      message.Text,
			AgentName: message.AgentName,
			Timestamp: message.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}

	return sessionSchema{
		ClientID:     string(session.ClientID),
		TicketID:     string(session.TicketID),
		Messages:     messages,
		CurrentAgent: session.CurrentAgent,
		Title:        session.Title,
		IsLoading:    session.IsLoading,
		IsLinking:    session.IsLinking,
		LinkStatus:   session.LinkStatus,
	}
}

func fromSessionSchema(schema sessionSchema) (domain.ChatSession, error) {
	messages := make([]domain.Message, 0, len(schema.Messages))
	for _, message := range schema.Messages {
		timestamp, err := time.Parse(time.RFC3339Nano, message.Timestamp)
		if err != nil {
			return domain.ChatSession{}, err
		}

		messages = append(messages, domain.Message{
			ID:        domain.MessageID(message.ID),
			Sender:    domain.Sender(message.Sender),
			Text:      message.Text,
			AgentName: message.AgentName,
			Timestamp: timestamp,
		})
	}

	return domain.ChatSession{
		ClientID:     domain.ClientID(schema.ClientID),
		TicketID:     domain.TicketID(schema.TicketID),
		Messages:     messages,
		CurrentAgent: schema.CurrentAgent,
		Title:        schema.Title,
		IsLoading:    schema.IsLoading,
		IsLinking:    schema.IsLinking,
		LinkStatus:   schema.LinkStatus,
	}, nil
}
