package upstream

import (
	"io"
	"net/http"
	"time"

	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/web-mcp/library/log"
)

const (
	defaultRequestTimeout = 60 * time.Second
	// logBodyLimit caps the number of response bytes logged for debugging.
	logBodyLimit = 4096
)

// ClientOption configures the Client instance.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for outbound calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger logSDK.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client performs a single outbound HTTP call per invocation and translates
// the outcome into the shared error taxonomy. It holds no mutable state, so
// one instance may serve concurrent invocations.
type Client struct {
	httpClient *http.Client
	logger     logSDK.Logger
}

// NewClient constructs a Client with a bounded default timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     log.Logger.Named("upstream"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Do sends the request and translates the response. A 2xx status yields the
// verbatim body text. A non-2xx status yields an UpstreamError carrying the
// status code, status text, and raw body. A call that never completes yields
// a TransportError wrapping the underlying fault.
func (c *Client) Do(req *http.Request) (string, error) {
	c.logger.Debug("outgoing http request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	startAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	truncatedBody, truncated := truncateForLog(body, logBodyLimit)
	c.logger.Debug("incoming http response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncatedBody),
		zap.Bool("body_truncated", truncated),
		zap.Duration("cost", time.Since(startAt)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	return string(body), nil
}

// truncateForLog limits the payload logged for debugging and reports whether
// truncation occurred.
func truncateForLog(body []byte, limit int) (string, bool) {
	if len(body) <= limit {
		return string(body), false
	}
	return string(body[:limit]), true
}
