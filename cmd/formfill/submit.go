package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tturner/formfill/internal/app"
	"github.com/tturner/formfill/internal/submission"
)

type submitFlags struct {
	common          app.CommonOptions
	url             string
	responses       string
	intervalMinutes string
	intervalSeconds string
	context         string
	tone            string
	printPayload    bool
}

func newSubmitCmd() *cobra.Command {
	flags := &submitFlags{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Generate responses for a form",
		Long: `Send one generation request to the automation service and wait for its answer.

The service fills the form itself; while it works, formfill shows a simulated
counter that advances once per interval. The counter is cosmetic: the
service's answer replaces it as soon as it arrives.

Inputs not given on the command line come from the defaults section of the
config file and FORMFILL_* environment variables.`,
		Example: `  # Three responses, five seconds apart
  formfill submit --url https://docs.google.com/forms/d/e/FORM_ID/viewform --responses 3

  # Negative answers for a movie survey, one minute apart
  formfill submit --url URL --responses 10 --interval-minutes 1 --interval-seconds 0 \
    --context "Movie feedback survey" --tone negative

  # Show the request body without sending it
  formfill submit --url URL --print-payload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.url == "" {
				return missingFlagError(cmd, "--url")
			}
			return app.RunSubmit(app.SubmitOptions{
				CommonOptions: flags.common,
				Fields:        flags.fields(cmd),
				PrintPayload:  flags.printPayload,
				Stdout:        cmd.OutOrStdout(),
				Stderr:        cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "Google Form URL (required)")
	cmd.Flags().StringVar(&flags.responses, "responses", "", "Number of responses, "+strconv.Itoa(submission.MinResponses)+"-"+strconv.Itoa(submission.MaxResponses)+" (default from config)")
	cmd.Flags().StringVar(&flags.intervalMinutes, "interval-minutes", "", "Minutes between responses, 0-5")
	cmd.Flags().StringVar(&flags.intervalSeconds, "interval-seconds", "", "Seconds between responses, 0-59 (total at most 5m)")
	cmd.Flags().StringVar(&flags.context, "context", "", "What the form is about, passed to the generator")
	cmd.Flags().StringVar(&flags.tone, "tone", "", "Response tone: positive|neutral|negative|mixed")
	cmd.Flags().BoolVar(&flags.printPayload, "print-payload", false, "Print the JSON request body and exit")
	addCommonFlags(cmd, &flags.common, true)

	return cmd
}

// fields returns the form inputs set on the command line, in flag order.
func (f *submitFlags) fields(cmd *cobra.Command) []app.FieldValue {
	candidates := []struct {
		flag  string
		field submission.Field
		value string
	}{
		{"url", submission.FieldFormURL, f.url},
		{"responses", submission.FieldResponses, f.responses},
		{"interval-minutes", submission.FieldIntervalMinutes, f.intervalMinutes},
		{"interval-seconds", submission.FieldIntervalSeconds, f.intervalSeconds},
		{"context", submission.FieldContext, f.context},
		{"tone", submission.FieldTone, f.tone},
	}
	var out []app.FieldValue
	for _, c := range candidates {
		if !cmd.Flags().Changed(c.flag) {
			continue
		}
		out = append(out, app.FieldValue{Field: c.field, Value: c.value, Flag: "--" + c.flag})
	}
	return out
}
