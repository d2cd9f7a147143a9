package toml

import (
	"fmt"
	"time"

	"github.com/bnema/support-chat-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version        int             `toml:"version"`
	ActiveClientID string          `toml:"active_client_id"`
	Order          []string        `toml:"order"`
	Sessions       []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ClientID     string          `toml:"client_id"`
	TicketID     string          `toml:"ticket_id,omitempty"`
	Title        string          `toml:"title"`
	CurrentAgent string          `toml:"current_agent,omitempty"`
	IsLoading    bool            `toml:"is_loading"`
	IsLinking    bool            `toml:"is_linking"`
	LinkStatus   string          `toml:"link_status,omitempty"`
	Messages     []messageSchema `toml:"messages"`
}

type messageSchema struct {
	ID        string `toml:"id"`
	Sender    string `toml:"sender"`
	Text      string `toml:"text"`
	AgentName string `toml:"agent_name,omitempty"`
	Timestamp string `toml:"timestamp"`
}

func toSchema(collection domain.SessionCollection) fileSchema {
	file := fileSchema{
		Version:        currentSchemaVersion,
		ActiveClientID: string(collection.ActiveClientID),
		Order:          make([]string, 0, len(collection.Order)),
		Sessions:       make([]sessionSchema, 0, len(collection.Sessions)),
	}

	for _, id := range collection.Order {
		file.Order = append(file.Order, string(id))
		if session, ok := collection.Sessions[id]; ok {
			file.Sessions = append(file.Sessions, toSessionSchema(session))
		}
	}

	return file
}

func toSessionSchema(session domain.ChatSession) sessionSchema {
	messages := make([]messageSchema, 0, len(session.Messages))
	for _, message := range session.Messages {
		messages = append(messages, messageSchema{
			ID:        string(message.ID),
			Sender:    string(message.Sender),
			Text:      message.Text,
			AgentName: message.AgentName,
			Timestamp: formatTime(message.Timestamp),
		})
	}

	return sessionSchema{
		ClientID:     string(session.ClientID),
		TicketID:     string(session.TicketID),
		Title:        session.Title,
		CurrentAgent: session.CurrentAgent,
		IsLoading:    session.IsLoading,
		IsLinking:    session.IsLinking,
		LinkStatus:   session.LinkStatus,
		Messages:     messages,
	}
}

func fromSchema(file fileSchema) (domain.SessionCollection, error) {
	collection := domain.SessionCollection{
		Sessions:       make(map[domain.ClientID]domain.ChatSession, len(file.Sessions)),
		Order:          make([]domain.ClientID, 0, len(file.Order)),
		ActiveClientID: domain.ClientID(file.ActiveClientID),
	}

	for _, id := range file.Order {
		collection.Order = append(collection.Order, domain.ClientID(id))
	}

	for _, entry := range file.Sessions {
		id := domain.ClientID(entry.ClientID)
		if _, ok := collection.Sessions[id]; ok {
			return domain.SessionCollection{}, fmt.Errorf("session %q stored twice", id)
		}

		messages := make([]domain.Message, 0, len(entry.Messages))
		for _, message := range entry.Messages {
			timestamp, err := parseTime(message.Timestamp)
			if err != nil {
				return domain.SessionCollection{}, fmt.Errorf("session %q message %q: %w", id, message.ID, err)
			}
			messages = append(messages, domain.Message{
				ID:        domain.MessageID(message.ID),
				Sender:    domain.Sender(message.Sender),
				Text:      message.Text,
				AgentName: message.AgentName,
				Timestamp: timestamp,
			})
		}

		collection.Sessions[id] = domain.ChatSession{
			ClientID:     id,
			TicketID:     domain.TicketID(entry.TicketID),
			Messages:     messages,
			CurrentAgent: entry.CurrentAgent,
			Title:        entry.Title,
			IsLoading:    entry.IsLoading,
			IsLinking:    entry.IsLinking,
			LinkStatus:   entry.LinkStatus,
		}
	}

	return collection, nil
}

func parseTime(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}

	return parsed, nil
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}
