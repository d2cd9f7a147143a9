package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

type Mode int

const (
	ModeTranscript Mode = iota
	ModeSessions
)

type RenderOptions struct {
	Mode Mode
	Now  time.Time
	// Width wraps message bodies; zero leaves them unwrapped.
	Width int
}

const userLabel = "You"

func renderSessions(collection domain.SessionCollection, opts RenderOptions, s styles) string {
	sessions := collection.Ordered()
	lines := []string{
		s.title.Render("Chat Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}

	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No chat sessions."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range sessions {
		marker := "  "
		titleStyle := s.session
		if session.ClientID == collection.ActiveClientID {
			marker = "* "
			titleStyle = s.active
		}

		row := lipgloss.JoinHorizontal(
			lipgloss.Top,
			marker,
			titleStyle.Render(session.Title),
			" ",
			s.detail.Render(sessionSummary(session)),
		)
		lines = append(lines, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionSummary(session domain.ChatSession) string {
	parts := []string{
		string(session.ClientID),
		ticketLabel(session.TicketID),
		fmt.Sprintf("%d %s", len(session.Messages), plural(len(session.Messages), "message", "messages")),
		"agent " + session.CurrentAgent,
	}
	if session.IsLoading {
		parts = append(parts, "waiting")
	}
	if session.IsLinking {
		parts = append(parts, "linking")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderTranscript(collection domain.SessionCollection, opts RenderOptions, s styles) string {
	session, ok := collection.Active()
	if !ok {
		return s.empty.Render("No active chat session.")
	}

	lines := []string{
		s.title.Render(session.Title),
		s.header.Render(fmt.Sprintf("%s | agent: %s", ticketLabel(session.TicketID), session.CurrentAgent)),
	}

	for _, message := range session.Messages {
		lines = append(lines, s.section.Render(renderMessage(message, opts, s)))
	}

	if session.IsLoading {
		lines = append(lines, s.section.Render(s.status.Render(session.CurrentAgent+" is typing...")))
	}
	if session.LinkStatus != "" {
		lines = append(lines, s.section.Render(s.status.Render(session.LinkStatus)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMessage(message domain.Message, opts RenderOptions, s styles) string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		senderStyle(message, s).Render(senderLabel(message)),
		" ",
		s.timestamp.Render(formatTimestamp(message.Timestamp, opts.Now)),
	)

	body := s.body
	if opts.Width > 2 {
		body = body.Width(opts.Width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body.Render(message.Text))
}

func senderLabel(message domain.Message) string {
	if message.Sender == domain.SenderUser {
		return userLabel
	}
	if strings.TrimSpace(message.AgentName) == "" {
		return "Agent"
	}
	return message.AgentName
}

func senderStyle(message domain.Message, s styles) lipgloss.Style {
	switch {
	case message.Sender == domain.SenderUser:
		return s.user
	case message.AgentName == domain.SystemAgentName:
		return s.system
	default:
		return s.agent
	}
}

func formatTimestamp(at, now time.Time) string {
	if at.IsZero() {
		return ""
	}
	if now.IsZero() {
		return at.Format("15:04 on 02 Jan")
	}
	if now.Sub(at) < time.Second && at.Sub(now) < time.Second {
		return "just now"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}

func ticketLabel(ticketID domain.TicketID) string {
	if ticketID == "" {
		return "no ticket"
	}
	return "ticket " + string(ticketID)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
