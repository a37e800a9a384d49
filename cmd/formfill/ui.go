package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/formfill/internal/app"
)

func newUICmd() *cobra.Command {
	opts := &app.CommonOptions{}
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive form",
		Long: `Launch the formfill TUI.

Fill in the form address, response count and interval, optionally open the
AI response settings, then submit. Progress is shown until the service
answers; the final message can be copied to the clipboard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return app.RunUI(*opts)
		},
	}
	addCommonFlags(cmd, opts, false)
	return cmd
}
