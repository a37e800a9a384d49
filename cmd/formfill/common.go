package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/formfill/internal/app"
)

// addCommonFlags registers the flags shared by submit and ui.
func addCommonFlags(cmd *cobra.Command, opts *app.CommonOptions, withQuiet bool) {
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Config file (default: ./formfill.yaml when present)")
	cmd.Flags().StringVar(&opts.APIURL, "api-url", "", "Generator service base address (overrides config and FORMFILL_API_URL)")
	cmd.Flags().StringVar(&opts.Variant, "variant", "", "Payload variant: minimal|extended")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Append log lines to this file")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Enable debug output (logs request and response bodies)")
	if withQuiet {
		cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "Print only the final message")
	}
}
