package cmd

import (
	"github.com/spf13/cobra"
)

func newShowCmd(app *app) *cobra.Command {
	var sessionID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the transcript of a chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveSession(app, sessionID)
			if err != nil {
				return err
			}

			if asJSON {
				session, _ := app.store.Session(id)
				active, _ := app.store.Active()
				return writeJSON(cmd, toSessionOutput(session, active.ClientID == id, true))
			}

			return writeTranscript(cmd, app, id)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: active session)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
