package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a UserFriendlyError so callers can branch with errors.Is.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindResponse
	KindConfig
)

// Sentinels matched by kind, e.g. errors.Is(err, ErrNetwork).
var (
	ErrNetwork  = UserFriendlyError{Kind: KindNetwork, Message: "network error"}
	ErrResponse = UserFriendlyError{Kind: KindResponse, Message: "response error"}
	ErrConfig   = UserFriendlyError{Kind: KindConfig, Message: "configuration error"}
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Kind    Kind
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a UserFriendlyError of the same non-zero kind.
func (e UserFriendlyError) Is(target error) bool {
	t, ok := target.(UserFriendlyError)
	if !ok {
		return false
	}
	return e.Kind != KindUnknown && e.Kind == t.Kind
}

// WrapNetworkError wraps a failed request to the generate endpoint.
func WrapNetworkError(err error, endpoint string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("Failed to reach the generator service at %s", endpoint),
		Reason:  extractNetworkReason(err),
		Hint:    "The automation service may not be running, or the API URL may be wrong",
		Try:     "Set FORMFILL_API_URL or api.url in your config file",
		Err:     err,
	}
}

// WrapResponseError wraps a response that arrived but could not be understood.
func WrapResponseError(err error, endpoint string, status int) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Kind:    KindResponse,
		Message: fmt.Sprintf("Unexpected response from %s (HTTP %d)", endpoint, status),
		Reason:  extractResponseReason(err),
		Hint:    "The service must answer with a JSON object carrying a \"message\" string",
		Try:     "Re-run with --debug to log the raw response body",
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Kind:    KindConfig,
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Run \"formfill config env\" to list the supported settings",
		Try:     fmt.Sprintf("Regenerate a default file: formfill config init %s", configPath),
		Err:     err,
	}
}

func extractNetworkReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return "Connection timeout - service may be offline or unreachable"
	}
	if strings.Contains(errStr, "context canceled") {
		return "Request was abandoned before a response arrived"
	}
	if strings.Contains(errStr, "connection refused") {
		return "Connection refused - nothing is listening on this address"
	}
	if strings.Contains(errStr, "no such host") {
		return "Host name could not be resolved"
	}
	if strings.Contains(errStr, "connection reset") || strings.Contains(errStr, "EOF") {
		return "Connection reset - service closed the connection unexpectedly"
	}

	return "Network communication failed"
}

func extractResponseReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "missing message") {
		return "Response JSON has no \"message\" string"
	}
	if strings.Contains(errStr, "invalid character") || strings.Contains(errStr, "unexpected end of JSON") {
		return "Response body is not valid JSON"
	}
	if strings.Contains(errStr, "cannot unmarshal") {
		return "Response JSON has an unexpected shape"
	}

	return "Response could not be interpreted"
}
