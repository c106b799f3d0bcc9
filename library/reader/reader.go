// Package reader wraps the remote content reader API that converts a target
// URL into markdown, html, plain text, or a screenshot.
package reader

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"

	"github.com/Laisky/web-mcp/library/log"
	"github.com/Laisky/web-mcp/library/upstream"
)

const defaultEndpoint = "https://r.jina.ai"

// headerFields maps each fetch parameter onto exactly one reader header.
// Absent parameters emit no header at all.
var headerFields = []upstream.Field{
	{Name: "with_generated_alt", Wire: "X-With-Generated-Alt", Encode: upstream.EncodeHeader},
	{Name: "set_cookie", Wire: "X-Set-Cookie", Encode: upstream.EncodeHeader},
	{Name: "return_format", Wire: "X-Respond-With", Encode: upstream.EncodeHeader},
	{Name: "proxy_url", Wire: "X-Proxy-Url", Encode: upstream.EncodeHeader},
	{Name: "cache_tolerance", Wire: "X-Cache-Tolerance", Encode: upstream.EncodeHeader},
	{Name: "no_cache", Wire: "X-No-Cache", Encode: upstream.EncodeHeader},
	{Name: "target_selector", Wire: "X-Target-Selector", Encode: upstream.EncodeHeader},
	{Name: "wait_for_selector", Wire: "X-Wait-For-Selector", Encode: upstream.EncodeHeader},
	{Name: "timeout", Wire: "X-Timeout", Encode: upstream.EncodeHeader},
}

// Option configures the Reader instance.
type Option func(*Reader)

// WithEndpoint overrides the reader endpoint, primarily for testing.
func WithEndpoint(endpoint string) Option {
	return func(r *Reader) {
		trimmed := strings.TrimSpace(endpoint)
		if trimmed != "" {
			r.endpoint = trimmed
		}
	}
}

// WithHTTPClient overrides the HTTP client used for outbound calls.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Reader) {
		if client != nil {
			r.client = upstream.NewClient(
				upstream.WithHTTPClient(client),
				upstream.WithLogger(r.logger),
			)
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger logSDK.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Reader translates fetch parameters into a single HTTP request against the
// content reader endpoint. Instances hold no mutable state.
type Reader struct {
	endpoint string
	client   *upstream.Client
	logger   logSDK.Logger
}

// NewReader constructs a Reader against the default endpoint.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		endpoint: defaultEndpoint,
		logger:   log.Logger.Named("reader"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if r.client == nil {
		r.client = upstream.NewClient(upstream.WithLogger(r.logger))
	}

	return r
}

// Fetch issues exactly one HTTP request for the given parameter set and
// returns the verbatim response body. The default mode is GET with the target
// URL concatenated onto the endpoint path; use_post switches to a POST with a
// form-encoded body, which keeps URL fragments intact since a fragment cannot
// survive path concatenation in a GET.
func (r *Reader) Fetch(ctx context.Context, params upstream.Params) (string, error) {
	target, _ := params.String("url")
	target = strings.TrimSpace(target)
	if target == "" {
		return "", upstream.NewValidationError("url", "url is required")
	}
	if parsed, err := url.Parse(target); err != nil || !parsed.IsAbs() {
		return "", upstream.NewValidationError("url", "url must be a valid absolute URL")
	}

	var req *http.Request
	var err error
	if usePost, _ := params.Bool("use_post"); usePost {
		form := url.Values{}
		form.Set("url", target)
		req, err = http.NewRequestWithContext(ctx, http.MethodPost,
			r.endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return "", errors.Wrap(err, "create reader POST request")
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet,
			strings.TrimRight(r.endpoint, "/")+"/"+target, nil)
		if err != nil {
			return "", errors.Wrap(err, "create reader GET request")
		}
	}

	if apiKey, ok := params.String("api_key"); ok && strings.TrimSpace(apiKey) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(apiKey))
	}

	// json_response only asks upstream for a JSON rendition; the body is
	// still returned verbatim either way.
	if jsonResponse, _ := params.Bool("json_response"); jsonResponse {
		req.Header.Set("Accept", "application/json")
	}

	if err = upstream.ApplyFields(headerFields, params, req.Header, nil, nil); err != nil {
		return "", errors.Wrap(err, "apply reader header fields")
	}

	return r.client.Do(req)
}
