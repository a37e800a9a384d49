package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tturner/formfill/internal/config"
	"github.com/tturner/formfill/internal/generate"
	"github.com/tturner/formfill/internal/logging"
	"github.com/tturner/formfill/internal/progress"
	"github.com/tturner/formfill/internal/submission"
)

// ErrSubmissionFailed is returned when the run failed or the service
// answered with an error message.
var ErrSubmissionFailed = errors.New("submission reported an error")

// FieldValue is one form input given on the command line.
type FieldValue struct {
	Field submission.Field
	Value string
	Flag  string
}

// CommonOptions are shared by every command that talks to the service.
type CommonOptions struct {
	ConfigPath string
	APIURL     string
	Variant    string
	LogFile    string
	Verbose    bool
	Debug      bool
	Quiet      bool
}

type SubmitOptions struct {
	CommonOptions
	Fields       []FieldValue
	PrintPayload bool
	Stdout       io.Writer
	Stderr       io.Writer
}

// RunSubmit submits once and blocks until the response arrives or the
// process is interrupted.
func RunSubmit(opts SubmitOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return Submit(ctx, opts)
}

// Submit is RunSubmit with a caller-supplied context.
func Submit(ctx context.Context, opts SubmitOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	env, err := setup(opts.CommonOptions, opts.Stdout, opts.Stderr)
	if err != nil {
		return err
	}
	defer env.logger.Close()

	var bar *progress.ProgressBar
	ctrl := submission.NewController(env.client, env.initial,
		submission.WithLogger(env.logger),
		submission.WithObserver(func(s submission.State) {
			if bar != nil && s.Submitting() {
				bar.Set(s.Completed)
			}
		}),
	)
	defer ctrl.Close()

	for _, fv := range opts.Fields {
		if err := ctrl.UpdateField(fv.Field, fv.Value); err != nil {
			return fmt.Errorf("%s: %w", fv.Flag, err)
		}
	}
	req := ctrl.Request()

	if opts.PrintPayload {
		data, err := env.client.Encode(req)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		fmt.Fprintln(opts.Stdout, string(data))
		return nil
	}

	if err := req.Validate(); err != nil {
		return err
	}

	bar = progress.NewProgressBar(req.Responses, req.Interval(), "Generating responses...")
	bar.SetOutput(opts.Stderr)
	if opts.Quiet {
		bar.Disable()
	}

	if err := ctrl.Submit(ctx); err != nil {
		return err
	}
	state, err := ctrl.Wait(ctx)
	if err != nil {
		return fmt.Errorf("wait for response: %w", err)
	}
	bar.Finish(state.Completed)

	fmt.Fprintln(opts.Stdout, state.Message)
	if state.IsError() {
		return ErrSubmissionFailed
	}
	return nil
}

type environment struct {
	logger  *logging.Logger
	client  *generate.Client
	initial submission.Request
}

// setup loads the config, opens the logger on the given console and builds
// the generator client. Flags override config values.
func setup(opts CommonOptions, stdout, stderr io.Writer) (*environment, error) {
	path := resolveConfigPath(opts.ConfigPath)
	cfg, err := config.Load(path, false)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel()
	switch {
	case opts.Debug:
		level = logging.LogLevelDebug
	case opts.Verbose:
		level = logging.LogLevelVerbose
	case opts.Quiet:
		level = logging.LogLevelSilent
	}
	logFile := cfg.Logging.File
	if opts.LogFile != "" {
		logFile = opts.LogFile
	}
	logger, err := logging.NewLogger(level, logFile)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	logger.SetConsole(stdout, stderr)

	variant := cfg.Variant()
	if opts.Variant != "" {
		v, err := generate.ParseVariant(opts.Variant)
		if err != nil {
			logger.Close()
			return nil, fmt.Errorf("--variant: %w", err)
		}
		variant = v
	}
	apiURL := cfg.API.URL
	if opts.APIURL != "" {
		apiURL = opts.APIURL
	}
	client := generate.NewClient(apiURL, variant, logger)

	initial, err := cfg.Request()
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger.LogStartup(client.Endpoint(), string(client.Variant()), path)
	return &environment{
		logger:  logger,
		client:  client,
		initial: initial,
	}, nil
}

// resolveConfigPath falls back to ./formfill.yaml when it exists, and to
// defaults plus environment otherwise.
func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.DefaultPath
	}
	return ""
}
