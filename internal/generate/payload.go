package generate

import (
	"fmt"
	"strings"

	"github.com/tturner/formfill/internal/submission"
)

// Variant selects which request body the service expects.
type Variant string

const (
	// VariantMinimal sends only the URL and count to a fixed local address.
	VariantMinimal Variant = "minimal"
	// VariantExtended sends timing, context and tone as well.
	VariantExtended Variant = "extended"
)

// Path is the service route for a generation run.
const Path = "/generate"

// Default service addresses. The minimal service address cannot be changed.
const (
	DefaultBaseURL = "http://127.0.0.1:5002"
	MinimalBaseURL = "http://127.0.0.1:5000"
)

// ParseVariant accepts a variant name in any case; blank means extended.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantExtended, nil
	case VariantMinimal, VariantExtended:
		return v, nil
	default:
		return "", fmt.Errorf("unknown payload variant %q (minimal|extended)", s)
	}
}

// MinimalPayload is the body understood by the single-purpose service.
type MinimalPayload struct {
	FormURL      string `json:"formUrl"`
	NumResponses int    `json:"numResponses"`
}

// ExtendedPayload adds timing and answer-generation hints.
type ExtendedPayload struct {
	FormURL         string `json:"formUrl"`
	NumResponses    int    `json:"numResponses"`
	IntervalMinutes int    `json:"intervalMinutes"`
	IntervalSeconds int    `json:"intervalSeconds"`
	FormContext     string `json:"formContext"`
	ResponseTone    string `json:"responseTone"`
}

// BuildPayload returns the JSON-encodable body for req.
func BuildPayload(v Variant, req submission.Request) interface{} {
	if v == VariantMinimal {
		return MinimalPayload{
			FormURL:      req.FormURL,
			NumResponses: req.Responses,
		}
	}
	return ExtendedPayload{
		FormURL:         req.FormURL,
		NumResponses:    req.Responses,
		IntervalMinutes: req.IntervalMinutes,
		IntervalSeconds: req.IntervalSeconds,
		FormContext:     req.Context,
		ResponseTone:    string(req.Tone),
	}
}

// Reply is the service's answer. Message is a pointer so that a missing
// field can be told apart from an empty one.
type Reply struct {
	Message *string `json:"message"`
	Details string  `json:"details,omitempty"`
}
