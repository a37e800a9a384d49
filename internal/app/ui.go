package app

import (
	"context"
	"io"

	"github.com/tturner/formfill/internal/submission"
	"github.com/tturner/formfill/internal/tui"
)

// RunUI opens the interactive form. Console logging is muted while the
// alternate screen is active; the log file still receives every line.
func RunUI(opts CommonOptions) error {
	env, err := setup(opts, io.Discard, io.Discard)
	if err != nil {
		return err
	}
	defer env.logger.Close()

	ctrl := submission.NewController(env.client, env.initial, submission.WithLogger(env.logger))
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	return tui.Run(ctx, ctrl)
}
