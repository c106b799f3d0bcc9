package tools

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/web-mcp/library/upstream"
)

// ContentFetcher abstracts the reader upstream used by the tool.
type ContentFetcher interface {
	Fetch(ctx context.Context, params upstream.Params) (string, error)
}

// WebFetchTool implements the web_fetch MCP tool.
type WebFetchTool struct {
	fetcher        ContentFetcher
	logger         logSDK.Logger
	apiKeyProvider APIKeyProvider
}

// NewWebFetchTool constructs a WebFetchTool with the provided dependencies.
func NewWebFetchTool(fetcher ContentFetcher, logger logSDK.Logger, apiKeyProvider APIKeyProvider) (*WebFetchTool, error) {
	if fetcher == nil {
		return nil, errors.New("content fetcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if apiKeyProvider == nil {
		return nil, errors.New("api key provider is required")
	}

	return &WebFetchTool{
		fetcher:        fetcher,
		logger:         logger,
		apiKeyProvider: apiKeyProvider,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *WebFetchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"web_fetch",
		mcp.WithDescription("Fetch remote web content by URL through the reader upstream and return it verbatim."),
		mcp.WithString(
			"url",
			mcp.Required(),
			mcp.Description("Absolute URL to retrieve."),
		),
		mcp.WithString(
			"api_key",
			mcp.Description("Reader API key. Falls back to the transport bearer token when omitted."),
		),
		mcp.WithBoolean(
			"with_generated_alt",
			mcp.Description("Ask upstream to generate alt text for images."),
		),
		mcp.WithBoolean(
			"no_cache",
			mcp.Description("Ask upstream to bypass its cache."),
		),
		mcp.WithBoolean(
			"use_post",
			mcp.Description("Send the target URL in a POST form body instead of the GET path. Required for URLs containing a fragment."),
		),
		mcp.WithBoolean(
			"json_response",
			mcp.Description("Ask upstream for a JSON rendition via the Accept header. The body is still returned verbatim."),
		),
		mcp.WithString(
			"set_cookie",
			mcp.Description("Cookie header value forwarded to the target site."),
		),
		mcp.WithString(
			"proxy_url",
			mcp.Description("Proxy URL used by upstream to reach the target."),
		),
		mcp.WithString(
			"target_selector",
			mcp.Description("CSS selector to extract from the page."),
		),
		mcp.WithString(
			"wait_for_selector",
			mcp.Description("CSS selector to wait for before capturing the page."),
		),
		mcp.WithString(
			"return_format",
			mcp.Description("Desired content rendition."),
			mcp.Enum("markdown", "html", "text", "screenshot"),
		),
		mcp.WithNumber(
			"cache_tolerance",
			mcp.Description("Acceptable upstream cache age in seconds."),
			mcp.Min(0),
		),
		mcp.WithNumber(
			"timeout",
			mcp.Description("Seconds upstream may spend rendering the page."),
			mcp.Min(0),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the web_fetch tool logic using the configured dependencies.
func (t *WebFetchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	urlValue, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	urlValue = strings.TrimSpace(urlValue)
	if urlValue == "" {
		return mcp.NewToolResultError("url cannot be empty"), nil
	}

	args := argumentsMap(req.Params.Arguments)
	params := upstream.Params{"url": urlValue}
	collectStrings(params, args, "set_cookie", "proxy_url", "target_selector", "wait_for_selector", "return_format")
	collectBools(params, args, "with_generated_alt", "no_cache", "use_post", "json_response")
	collectInts(params, args, "cache_tolerance", "timeout")

	// the api key is optional for fetch; an explicit argument wins over the
	// transport bearer token
	apiKey := resolveAPIKey(ctx, args, t.apiKeyProvider)
	if apiKey != "" {
		params["api_key"] = apiKey
	}

	content, err := t.fetcher.Fetch(ctx, params)
	if err != nil {
		t.logger.Warn("web_fetch failed", zap.Error(err), zap.String("url", urlValue))
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(content), nil
}
