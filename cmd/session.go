package cmd

import (
	"errors"
	"fmt"

	transcriptadapter "github.com/bnema/support-chat-cli/internal/adapters/render/transcript"
	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Manage chat sessions",
	}

	cmd.AddCommand(
		newSessionNewCmd(app),
		newSessionListCmd(app),
		newSessionSelectCmd(app),
		newSessionDeleteCmd(app),
	)

	return cmd
}

func newSessionNewCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new chat session and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := app.store.CreateSession(cmd.Context())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}

func newSessionListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List chat sessions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot := app.store.Snapshot()
			if !asJSON {
				return writeRendered(cmd, app, snapshot, transcriptadapter.ModeSessions)
			}

			sessions := make([]sessionOutput, 0, len(snapshot.Order))
			for _, session := range snapshot.Ordered() {
				sessions = append(sessions, toSessionOutput(session, session.ClientID == snapshot.ActiveClientID, false))
			}
			return writeJSON(cmd, sessions)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newSessionSelectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <session-id>",
		Short: "Make a chat session active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store.SelectSession(cmd.Context(), domain.ClientID(args[0])); err != nil {
				return fmt.Errorf("select session %s: %w", args[0], err)
			}
			return writeTranscript(cmd, app, domain.ClientID(args[0]))
		},
	}
}

func newSessionDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <session-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a chat session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.store.DeleteSession(cmd.Context(), domain.ClientID(args[0]))
			if errors.Is(err, domain.ErrLastSession) {
				return fmt.Errorf("delete session %s: the last remaining session cannot be deleted", args[0])
			}
			if err != nil {
				return fmt.Errorf("delete session %s: %w", args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}
