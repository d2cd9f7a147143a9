package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSendCmd(app *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a message to support and wait for a reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSession(app, sessionID)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			sendErr := runChatSpinner(cmd.Context(), cmd.ErrOrStderr(), app, id, "Sending message...", func(ctx context.Context) error {
				return app.controller.SendMessage(ctx, id, text)
			})
			switch {
			case errors.Is(sendErr, domain.ErrEmptyMessage):
				return errors.New("message is empty")
			case errors.Is(sendErr, domain.ErrSessionBusy):
				return fmt.Errorf("session %s is still sending a message", id)
			}

			if err := writeTranscript(cmd, app, id); err != nil {
				return err
			}
			return sendErr
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: active session)")

	return cmd
}

func newPollCmd(app *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Fetch new replies for a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveSession(app, sessionID)
			if err != nil {
				return err
			}

			session, _ := app.store.Session(id)
			if !session.HasTicket() {
				return fmt.Errorf("poll session %s: %w", id, domain.ErrNoTicket)
			}

			pollErr := runChatSpinner(cmd.Context(), cmd.ErrOrStderr(), app, id, "Checking for replies...", func(ctx context.Context) error {
				return app.controller.PollForReply(ctx, id, session.TicketID)
			})

			if err := writeTranscript(cmd, app, id); err != nil {
				return err
			}
			return pollErr
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: active session)")

	return cmd
}
