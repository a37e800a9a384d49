package config

// Configuration loading and validation for formfill

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/tturner/formfill/internal/errors"
	"github.com/tturner/formfill/internal/generate"
	"github.com/tturner/formfill/internal/logging"
	"github.com/tturner/formfill/internal/submission"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "formfill.yaml"

// APIConfig points at the automation service.
type APIConfig struct {
	URL     string `yaml:"url" env:"FORMFILL_API_URL" env-description:"Base address of the generator service (extended variant only)"`
	Variant string `yaml:"variant" env:"FORMFILL_VARIANT" env-description:"Payload variant: minimal or extended"`
}

// DefaultsConfig holds the initial form values.
type DefaultsConfig struct {
	Responses       int    `yaml:"responses" env:"FORMFILL_RESPONSES" env-description:"Default number of responses (1-50)"`
	IntervalMinutes int    `yaml:"interval_minutes" env:"FORMFILL_INTERVAL_MINUTES" env-description:"Default interval minutes (0-5)"`
	IntervalSeconds int    `yaml:"interval_seconds" env:"FORMFILL_INTERVAL_SECONDS" env-description:"Default interval seconds (0-59)"`
	Tone            string `yaml:"tone" env:"FORMFILL_TONE" env-description:"Default tone: positive, neutral, negative or mixed"`
	Context         string `yaml:"context" env:"FORMFILL_CONTEXT" env-description:"Default form description passed to the generator"`
}

// LoggingConfig controls the leveled logger.
type LoggingConfig struct {
	Level string `yaml:"level" env:"FORMFILL_LOG_LEVEL" env-description:"Log level: silent, error, info, verbose or debug"`
	File  string `yaml:"file" env:"FORMFILL_LOG_FILE" env-description:"Append log lines to this file"`
}

// Config is the complete formfill configuration. Values come from the
// YAML file, then FORMFILL_* environment variables override them.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CreateDefaultConfig returns the built-in configuration.
func CreateDefaultConfig() *Config {
	req := submission.DefaultRequest()
	return &Config{
		API: APIConfig{
			URL:     generate.DefaultBaseURL,
			Variant: string(generate.VariantExtended),
		},
		Defaults: DefaultsConfig{
			Responses:       req.Responses,
			IntervalMinutes: req.IntervalMinutes,
			IntervalSeconds: req.IntervalSeconds,
			Tone:            string(req.Tone),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(CreateDefaultConfig()); err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Load reads the configuration. An empty path uses defaults plus the
// environment. A missing file is created when autoCreate is set and is an
// error otherwise. Keys absent from the file keep their defaults, so an
// explicit zero in the file is honoured.
func Load(path string, autoCreate bool) (*Config, error) {
	cfg := CreateDefaultConfig()

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.WrapConfigError(fmt.Errorf("stat config file: %w", err), path)
		}
		if !autoCreate {
			return nil, errors.WrapConfigError(fmt.Errorf("config file not found: %s", path), path)
		}
		if err := WriteDefault(path); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, errors.WrapConfigError(err, path)
	}
	if err := Validate(cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("validate config: %w", err), path)
	}
	return cfg, nil
}

// Validate checks every value against the same bounds the form enforces.
func Validate(cfg *Config) error {
	if _, err := generate.ParseVariant(cfg.API.Variant); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if _, err := cfg.Request(); err != nil {
		return err
	}
	return nil
}

// Request builds the initial form values from the defaults section. The
// form URL is left blank.
func (c *Config) Request() (submission.Request, error) {
	d := c.Defaults
	if d.Responses < submission.MinResponses || d.Responses > submission.MaxResponses {
		return submission.Request{}, fmt.Errorf("defaults.responses: %w", submission.ErrResponsesOutOfRange)
	}
	if err := submission.ValidateInterval(d.IntervalMinutes, d.IntervalSeconds); err != nil {
		return submission.Request{}, fmt.Errorf("defaults.interval: %w", err)
	}
	tone, err := submission.ParseTone(d.Tone)
	if err != nil {
		return submission.Request{}, fmt.Errorf("defaults.tone: %w", err)
	}
	return submission.Request{
		Responses:       d.Responses,
		IntervalMinutes: d.IntervalMinutes,
		IntervalSeconds: d.IntervalSeconds,
		Context:         d.Context,
		Tone:            tone,
	}, nil
}

// Variant returns the parsed payload variant.
func (c *Config) Variant() generate.Variant {
	v, err := generate.ParseVariant(c.API.Variant)
	if err != nil {
		return generate.VariantExtended
	}
	return v
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.LogLevel {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LogLevelInfo
	}
	return level
}

// EnvDescription lists the supported environment variables.
func EnvDescription() (string, error) {
	return cleanenv.GetDescription(CreateDefaultConfig(), nil)
}
