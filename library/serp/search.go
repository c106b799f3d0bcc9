// Package serp wraps the search and flights aggregator APIs. Every engine is
// a stateless translator: present parameters are serialised onto one outbound
// GET request and the response is folded into the shared error taxonomy.
package serp

import (
	"context"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"

	"github.com/Laisky/web-mcp/library/log"
	"github.com/Laisky/web-mcp/library/upstream"
)

const defaultSearchEndpoint = "https://s.jina.ai/"

// searchQueryFields lists every search parameter forwarded on the query
// string. count and num are independent entries on purpose: both are
// forwarded when both are present, and reconciling them is the downstream
// API's responsibility.
var searchQueryFields = []upstream.Field{
	{Name: "q", Encode: upstream.EncodeQuery},
	{Name: "type", Encode: upstream.EncodeQuery},
	{Name: "provider", Encode: upstream.EncodeQuery},
	{Name: "count", Encode: upstream.EncodeQuery},
	{Name: "num", Encode: upstream.EncodeQuery},
	{Name: "gl", Encode: upstream.EncodeQuery},
	{Name: "hl", Encode: upstream.EncodeQuery},
	{Name: "location", Encode: upstream.EncodeQuery},
	{Name: "page", Encode: upstream.EncodeQuery},
	{Name: "nfpr", Encode: upstream.EncodeQuery},
	{Name: "ext", Encode: upstream.EncodeQuery},
	{Name: "filetype", Encode: upstream.EncodeQuery},
	{Name: "intitle", Encode: upstream.EncodeQuery},
	{Name: "site", Encode: upstream.EncodeQuery},
	{Name: "loc", Encode: upstream.EncodeQuery},
}

// searchHeaderFields covers the cache controls, which stay on headers rather
// than the query string.
var searchHeaderFields = []upstream.Field{
	{Name: "cache_tolerance", Wire: "X-Cache-Tolerance", Encode: upstream.EncodeHeader},
	{Name: "no_cache", Wire: "X-No-Cache", Encode: upstream.EncodeHeader},
}

// SearchOption configures the SearchEngine instance.
type SearchOption func(*SearchEngine)

// WithSearchEndpoint overrides the search endpoint, primarily for testing.
func WithSearchEndpoint(endpoint string) SearchOption {
	return func(engine *SearchEngine) {
		trimmed := strings.TrimSpace(endpoint)
		if trimmed != "" {
			engine.endpoint = trimmed
		}
	}
}

// WithSearchHTTPClient overrides the HTTP client used for outbound calls.
func WithSearchHTTPClient(client *http.Client) SearchOption {
	return func(engine *SearchEngine) {
		if client != nil {
			engine.client = upstream.NewClient(
				upstream.WithHTTPClient(client),
				upstream.WithLogger(engine.logger),
			)
		}
	}
}

// WithSearchLogger overrides the default logger.
func WithSearchLogger(logger logSDK.Logger) SearchOption {
	return func(engine *SearchEngine) {
		if logger != nil {
			engine.logger = logger
		}
	}
}

// SearchEngine issues one GET request per search invocation with every
// present parameter encoded on the query string.
type SearchEngine struct {
	endpoint string
	client   *upstream.Client
	logger   logSDK.Logger
}

// NewSearchEngine constructs a SearchEngine against the default endpoint.
func NewSearchEngine(opts ...SearchOption) *SearchEngine {
	engine := &SearchEngine{
		endpoint: defaultSearchEndpoint,
		logger:   log.Logger.Named("serp_search"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(engine)
		}
	}

	if engine.client == nil {
		engine.client = upstream.NewClient(upstream.WithLogger(engine.logger))
	}

	return engine
}

// Search performs the search request and returns the verbatim response body.
func (e *SearchEngine) Search(ctx context.Context, params upstream.Params) (string, error) {
	query, _ := params.String("q")
	if strings.TrimSpace(query) == "" {
		return "", upstream.NewValidationError("q", "query is required")
	}

	apiKey, _ := params.String("api_key")
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", upstream.NewValidationError("api_key", "api key is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, "create search request")
	}

	values := req.URL.Query()
	if err = upstream.ApplyFields(searchQueryFields, params, nil, values, nil); err != nil {
		return "", errors.Wrap(err, "apply search query fields")
	}

	// fallback always carries a value; everything else is present-only.
	if !params.Has("fallback") {
		values.Set("fallback", "true")
	} else if fallback, ok := params.Bool("fallback"); ok {
		values.Set("fallback", boolLiteral(fallback))
	}
	req.URL.RawQuery = values.Encode()

	req.Header.Set("Authorization", "Bearer "+apiKey)
	if format, ok := params.String("return_format"); ok && format == "json" {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "text/plain")
	}
	if err = upstream.ApplyFields(searchHeaderFields, params, req.Header, nil, nil); err != nil {
		return "", errors.Wrap(err, "apply search header fields")
	}

	return e.client.Do(req)
}

func boolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
