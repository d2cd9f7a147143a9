package domain

import "fmt"

// SessionCollection is the process-wide chat state: every session keyed by
// its client id, the display order, and the active pointer.
type SessionCollection struct {
	Sessions       map[ClientID]ChatSession
	Order          []ClientID
	ActiveClientID ClientID
}

func NewSessionCollection() SessionCollection {
	return SessionCollection{Sessions: map[ClientID]ChatSession{}}
}

func (c SessionCollection) Contains(id ClientID) bool {
	_, ok := c.Sessions[id]
	return ok
}

func (c SessionCollection) Active() (ChatSession, bool) {
	if c.ActiveClientID == "" {
		return ChatSession{}, false
	}
	session, ok := c.Sessions[c.ActiveClientID]
	return session, ok
}

// Ordered returns the sessions in display order.
func (c SessionCollection) Ordered() []ChatSession {
	sessions := make([]ChatSession, 0, len(c.Order))
	for _, id := range c.Order {
		if session, ok := c.Sessions[id]; ok {
			sessions = append(sessions, session)
		}
	}
	return sessions
}

func (c SessionCollection) Clone() SessionCollection {
	clone := SessionCollection{
		Sessions:       make(map[ClientID]ChatSession, len(c.Sessions)),
		Order:          append([]ClientID(nil), c.Order...),
		ActiveClientID: c.ActiveClientID,
	}
	for id, session := range c.Sessions {
		clone.Sessions[id] = session.Clone()
	}
	return clone
}

// Validate checks the structural invariants a restored collection must hold.
func (c SessionCollection) Validate() error {
	if len(c.Order) == 0 {
		return fmt.Errorf("order is empty")
	}
	if len(c.Order) != len(c.Sessions) {
		return fmt.Errorf("order has %d entries but %d sessions exist", len(c.Order), len(c.Sessions))
	}

	seen := make(map[ClientID]struct{}, len(c.Order))
	for _, id := range c.Order {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("session %q listed twice in order", id)
		}
		seen[id] = struct{}{}

		session, ok := c.Sessions[id]
		if !ok {
			return fmt.Errorf("session %q in order but missing", id)
		}
		if session.ClientID != id {
			return fmt.Errorf("session keyed %q carries client id %q", id, session.ClientID)
		}
		if err := validateMessages(session.Messages); err != nil {
			return fmt.Errorf("session %q: %w", id, err)
		}
	}

	if c.ActiveClientID != "" {
		if _, ok := seen[c.ActiveClientID]; !ok {
			return fmt.Errorf("active session %q not in order", c.ActiveClientID)
		}
	}

	return nil
}

func validateMessages(messages []Message) error {
	if len(messages) == 0 || messages[0].ID != WelcomeMessageID {
		return fmt.Errorf("welcome message missing")
	}

	seen := make(map[MessageID]struct{}, len(messages))
	for _, message := range messages {
		if message.ID == "" {
			return fmt.Errorf("message without id")
		}
		if _, ok := seen[message.ID]; ok {
			return fmt.Errorf("duplicate message id %q", message.ID)
		}
		if !message.Sender.Valid() {
			return fmt.Errorf("message %q has unknown sender %q", message.ID, message.Sender)
		}
		seen[message.ID] = struct{}{}
	}

	return nil
}
