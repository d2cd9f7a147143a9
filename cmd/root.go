package cmd

import "github.com/spf13/cobra"

func Execute() error {
	rootCmd, cleanup := newRootCmd()
	defer cleanup()

	return rootCmd.Execute()
}

// newRootCmd builds the command tree. The returned cleanup releases storage
// handles and must run once the command has finished.
func newRootCmd() (*cobra.Command, func()) {
	rootCmd := &cobra.Command{
		Use:           "sc",
		Short:         "Support Chat CLI (sc): talk to support from the terminal",
		Long:          "sc (Support Chat CLI) keeps several support conversations side by side, sends your messages to the support backend, fetches agent replies, and links a contact channel to a ticket.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() {}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSessionCmd(app),
		newSendCmd(app),
		newPollCmd(app),
		newShowCmd(app),
		newLinkCmd(app),
		newWhoamiCmd(app),
	)

	return rootCmd, app.close
}
