package submission

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Input bounds, as enforced by the form widgets.
const (
	MinResponses       = 1
	MaxResponses       = 50
	MaxIntervalMinutes = 5
	MaxIntervalSeconds = 59
	MaxInterval        = 5 * time.Minute
)

var (
	ErrMissingURL          = errors.New("form URL is required")
	ErrResponsesOutOfRange = fmt.Errorf("response count must be between %d and %d", MinResponses, MaxResponses)
	ErrIntervalOutOfRange  = fmt.Errorf("interval must be between 0s and %s", MaxInterval)
	ErrInvalidTone         = errors.New("tone must be one of positive, neutral, negative, mixed")
	ErrUnknownField        = errors.New("unknown field")
)

// Tone is the answer style passed through to the generator service.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
	ToneMixed    Tone = "mixed"
)

// Tones lists every accepted tone in display order.
var Tones = []Tone{TonePositive, ToneNeutral, ToneNegative, ToneMixed}

// ParseTone accepts a tone name in any case.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tones {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidTone, s)
}

// Field names one editable input. Values match the JSON keys sent to
// the service.
type Field string

const (
	FieldFormURL         Field = "formUrl"
	FieldResponses       Field = "numResponses"
	FieldIntervalMinutes Field = "intervalMinutes"
	FieldIntervalSeconds Field = "intervalSeconds"
	FieldContext         Field = "formContext"
	FieldTone            Field = "responseTone"
)

// Request is the set of parameters sent with one submission.
type Request struct {
	FormURL         string
	Responses       int
	IntervalMinutes int
	IntervalSeconds int
	Context         string
	Tone            Tone
}

// DefaultRequest returns the initial form values.
func DefaultRequest() Request {
	return Request{
		Responses:       1,
		IntervalMinutes: 0,
		IntervalSeconds: 5,
		Tone:            TonePositive,
	}
}

// Interval is the simulated time between two responses.
func (r Request) Interval() time.Duration {
	return time.Duration(r.IntervalMinutes)*time.Minute + time.Duration(r.IntervalSeconds)*time.Second
}

// Validate checks the submit preconditions.
func (r Request) Validate() error {
	if strings.TrimSpace(r.FormURL) == "" {
		return ErrMissingURL
	}
	if r.Responses < MinResponses || r.Responses > MaxResponses {
		return fmt.Errorf("%w: got %d", ErrResponsesOutOfRange, r.Responses)
	}
	if err := ValidateInterval(r.IntervalMinutes, r.IntervalSeconds); err != nil {
		return err
	}
	if _, err := ParseTone(string(r.Tone)); err != nil {
		return err
	}
	return nil
}

// ValidateInterval rejects a minutes/seconds pair outside the widget bounds
// or above the five minute ceiling (5m59s is not allowed).
func ValidateInterval(minutes, seconds int) error {
	if minutes < 0 || minutes > MaxIntervalMinutes || seconds < 0 || seconds > MaxIntervalSeconds {
		return fmt.Errorf("%w: got %dm%ds", ErrIntervalOutOfRange, minutes, seconds)
	}
	total := time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if total > MaxInterval {
		return fmt.Errorf("%w: got %s", ErrIntervalOutOfRange, total)
	}
	return nil
}

// ParseResponses parses a response count and applies its bounds.
func ParseResponses(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrResponsesOutOfRange, value)
	}
	if n < MinResponses || n > MaxResponses {
		return 0, fmt.Errorf("%w: got %d", ErrResponsesOutOfRange, n)
	}
	return n, nil
}

// ParseIntervalPart parses a minutes or seconds value. Blank or non-numeric
// input reads as 0; numbers outside [0, max] are rejected.
func ParseIntervalPart(value string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, nil
	}
	if n < 0 || n > max {
		return 0, fmt.Errorf("%w: %d is outside 0-%d", ErrIntervalOutOfRange, n, max)
	}
	return n, nil
}

// With returns a copy of r with one field replaced by value, applying the
// same per-input bounds the form widgets enforce.
func (r Request) With(field Field, value string) (Request, error) {
	switch field {
	case FieldFormURL:
		r.FormURL = strings.TrimSpace(value)
	case FieldResponses:
		n, err := ParseResponses(value)
		if err != nil {
			return r, err
		}
		r.Responses = n
	case FieldIntervalMinutes:
		n, err := ParseIntervalPart(value, MaxIntervalMinutes)
		if err != nil {
			return r, err
		}
		r.IntervalMinutes = n
	case FieldIntervalSeconds:
		n, err := ParseIntervalPart(value, MaxIntervalSeconds)
		if err != nil {
			return r, err
		}
		r.IntervalSeconds = n
	case FieldContext:
		r.Context = value
	case FieldTone:
		t, err := ParseTone(value)
		if err != nil {
			return r, err
		}
		r.Tone = t
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return r, nil
}
