package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type ClientID string
type TicketID string

const (
	DefaultSessionTitle = "New Chat"
	TitleMaxRunes       = 30
	titleEllipsis       = "..."
)

type ChatSession struct {
	ClientID     ClientID
	TicketID     TicketID
	Messages     []Message
	CurrentAgent string
	Title        string
	IsLoading    bool
	IsLinking    bool
	LinkStatus   string
}

// SessionPatch carries the fields to merge into a session. Nil fields are
// left untouched.
type SessionPatch struct {
	TicketID     *TicketID
	CurrentAgent *string
	Title        *string
	IsLoading    *bool
	IsLinking    *bool
	LinkStatus   *string
}

func NewChatSession(id ClientID, createdAt time.Time) ChatSession {
	return ChatSession{
		ClientID:     id,
		Messages:     []Message{NewWelcomeMessage(createdAt)},
		CurrentAgent: InitialAgentName,
		Title:        DefaultSessionTitle,
	}
}

func (s ChatSession) HasTicket() bool {
	return s.TicketID != ""
}

// Apply merges the patch into the session. A ticket id is only recorded when
// none is present yet; ErrTicketAlreadyAssigned reports a discarded one while
// the remaining fields are still applied.
func (s *ChatSession) Apply(patch SessionPatch) error {
	var err error

	if patch.TicketID != nil && *patch.TicketID != "" {
		switch {
		case s.TicketID == "":
			s.TicketID = *patch.TicketID
		case s.TicketID != *patch.TicketID:
			err = ErrTicketAlreadyAssigned
		}
	}
	if patch.CurrentAgent != nil {
		s.CurrentAgent = *patch.CurrentAgent
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.IsLoading != nil {
		s.IsLoading = *patch.IsLoading
	}
	if patch.IsLinking != nil {
		s.IsLinking = *patch.IsLinking
	}
	if patch.LinkStatus != nil {
		s.LinkStatus = *patch.LinkStatus
	}

	return err
}

// ResetTransient clears the in-flight flags that cannot survive a restart.
func (s *ChatSession) ResetTransient() {
	s.IsLoading = false
	s.IsLinking = false
	s.LinkStatus = ""
}

func (s ChatSession) Clone() ChatSession {
	clone := s
	clone.Messages = append([]Message(nil), s.Messages...)
	return clone
}

// DeriveTitle turns the first user message into a display title.
func DeriveTitle(text string) string {
	trimmed := strings.Join(strings.Fields(text), " ")
	if trimmed == "" {
		return DefaultSessionTitle
	}
	if utf8.RuneCountInString(trimmed) <= TitleMaxRunes {
		return trimmed
	}

	runes := []rune(trimmed)
	return strings.TrimSpace(string(runes[:TitleMaxRunes])) + titleEllipsis
}

func Ptr[T any](v T) *T {
	return &v
}
