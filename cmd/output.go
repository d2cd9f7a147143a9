package cmd

import (
	"encoding/json"
	"fmt"

	transcriptadapter "github.com/bnema/support-chat-cli/internal/adapters/render/transcript"
	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/spf13/cobra"
)

// resolveSession returns the requested session id, or the active one when
// none was given.
func resolveSession(app *app, requested string) (domain.ClientID, error) {
	if requested == "" {
		active, ok := app.store.Active()
		if !ok {
			return "", domain.ErrSessionNotFound
		}
		return active.ClientID, nil
	}

	id := domain.ClientID(requested)
	if _, ok := app.store.Session(id); !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrSessionNotFound, requested)
	}
	return id, nil
}

func writeTranscript(cmd *cobra.Command, app *app, id domain.ClientID) error {
	snapshot := app.store.Snapshot()
	snapshot.ActiveClientID = id

	return writeRendered(cmd, app, snapshot, transcriptadapter.ModeTranscript)
}

func writeRendered(cmd *cobra.Command, app *app, snapshot domain.SessionCollection, mode transcriptadapter.Mode) error {
	rendered, err := app.renderer(snapshot, transcriptadapter.RenderOptions{
		Mode: mode,
		Now:  app.now(),
	})
	if err != nil {
		return fmt.Errorf("render chat: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

type sessionOutput struct {
	ClientID     domain.ClientID `json:"client_id"`
	TicketID     domain.TicketID `json:"ticket_id,omitempty"`
	Title        string          `json:"title"`
	CurrentAgent string          `json:"current_agent"`
	Active       bool            `json:"active"`
	Messages     []messageOutput `json:"messages,omitempty"`
}

type messageOutput struct {
	ID        domain.MessageID `json:"id"`
	Sender    domain.Sender    `json:"sender"`
	AgentName string           `json:"agent_name,omitempty"`
	Text      string           `json:"text"`
	Timestamp string           `json:"timestamp"`
}

func toSessionOutput(session domain.ChatSession, active bool, withMessages bool) sessionOutput {
	out := sessionOutput{
		ClientID:     session.ClientID,
		TicketID:     session.TicketID,
		Title:        session.Title,
		CurrentAgent: session.CurrentAgent,
		Active:       active,
	}
	if !withMessages {
		return out
	}

	out.Messages = make([]messageOutput, 0, len(session.Messages))
	for _, message := range session.Messages {
		out.Messages = append(out.Messages, messageOutput{
			ID:        message.ID,
			Sender:    message.Sender,
			AgentName: message.AgentName,
			Text:      message.Text,
			Timestamp: message.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
	return out
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
