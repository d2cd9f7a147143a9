package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newLinkCmd(app *app) *cobra.Command {
	var sessionID string
	var channel string
	var identifier string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link an email address or Telegram handle to the session's ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveSession(app, sessionID)
			if err != nil {
				return err
			}

			prompter := linePrompter{
				in:     cmd.InOrStdin(),
				out:    cmd.ErrOrStderr(),
				preset: identifier,
			}
			err = app.linkingCoordinator(prompter).LinkTicket(cmd.Context(), id, ports.ChannelType(strings.ToLower(channel)))
			if errors.Is(err, domain.ErrNoTicket) {
				return fmt.Errorf("link session %s: send a message first to open a ticket", id)
			}

			if session, ok := app.store.Session(id); ok && session.LinkStatus != "" {
				if _, writeErr := fmt.Fprintln(cmd.OutOrStdout(), session.LinkStatus); writeErr != nil {
					return writeErr
				}
			}

			return err
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: active session)")
	cmd.Flags().StringVar(&channel, "channel", "", "Contact channel: email or telegram")
	cmd.Flags().StringVar(&identifier, "identifier", "", "Email address or Telegram handle (prompted when omitted)")
	_ = cmd.MarkFlagRequired("channel")

	return cmd
}

// linePrompter reads the channel identifier from a single input line unless
// one was supplied up front.
type linePrompter struct {
	in     io.Reader
	out    io.Writer
	preset string
}

func (p linePrompter) PromptIdentifier(ctx context.Context, channel ports.ChannelType) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.preset != "" {
		return p.preset, nil
	}

	if _, err := fmt.Fprintf(p.out, "Enter your %s (leave empty to cancel): ", channelLabel(channel)); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read identifier: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func channelLabel(channel ports.ChannelType) string {
	switch channel {
	case ports.ChannelEmail:
		return "email address"
	case ports.ChannelTelegram:
		return "Telegram handle"
	default:
		return string(channel)
	}
}
