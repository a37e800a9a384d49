package generate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-resty/resty/v2"

	ffErrors "github.com/tturner/formfill/internal/errors"
	"github.com/tturner/formfill/internal/logging"
	"github.com/tturner/formfill/internal/submission"
)

var errMissingMessage = errors.New("missing message field")

// Client posts submissions to the automation service. It never retries
// and sets no timeout; the caller's context is the only bound.
type Client struct {
	http    *resty.Client
	variant Variant
	baseURL string
	logger  *logging.Logger
}

// NewClient builds a client for baseURL. The minimal variant ignores
// baseURL and always talks to MinimalBaseURL.
func NewClient(baseURL string, variant Variant, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if variant == "" {
		variant = VariantExtended
	}
	switch {
	case variant == VariantMinimal:
		baseURL = MinimalBaseURL
	case strings.TrimSpace(baseURL) == "":
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	httpClient := resty.New().
		SetHostURL(baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger})

	return &Client{
		http:    httpClient,
		variant: variant,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Endpoint is the full URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.baseURL + Path
}

// Variant reports the payload variant in use.
func (c *Client) Variant() Variant {
	return c.variant
}

// Encode returns the indented JSON body that Generate would send for req.
func (c *Client) Encode(req submission.Request) ([]byte, error) {
	return json.MarshalIndent(BuildPayload(c.variant, req), "", "  ")
}

// Generate implements submission.Generator.
func (c *Client) Generate(ctx context.Context, req submission.Request) (string, error) {
	body, err := json.Marshal(BuildPayload(c.variant, req))
	if err != nil {
		return "", err
	}
	c.logger.Verbose("POST %s", c.Endpoint())
	c.logger.LogBody("request", body)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(Path)
	if err != nil {
		return "", ffErrors.WrapNetworkError(err, c.Endpoint())
	}

	status := resp.StatusCode()
	c.logger.LogBody("response", resp.Body())

	reply, err := decodeReply(resp.Body())
	if err != nil {
		return "", ffErrors.WrapResponseError(err, c.Endpoint(), status)
	}
	if resp.IsError() {
		c.logger.Info("service answered HTTP %d: %s", status, *reply.Message)
	}
	if reply.Details != "" {
		c.logger.Verbose("service details: %s", reply.Details)
	}
	return *reply.Message, nil
}

func decodeReply(body []byte) (Reply, error) {
	var reply Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return Reply{}, err
	}
	if reply.Message == nil {
		return Reply{}, errMissingMessage
	}
	return reply, nil
}

// restyLogger routes resty's internal warnings into the formfill log.
type restyLogger struct {
	l *logging.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error("resty: "+format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Verbose("resty: "+format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug("resty: "+format, v...) }
