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

// SearchProvider abstracts the search upstream used by the tool.
type SearchProvider interface {
	Search(ctx context.Context, params upstream.Params) (string, error)
}

// WebSearchTool implements the web_search MCP tool.
type WebSearchTool struct {
	searchProvider SearchProvider
	logger         logSDK.Logger
	apiKeyProvider APIKeyProvider
}

// NewWebSearchTool constructs a WebSearchTool with the provided dependencies.
func NewWebSearchTool(provider SearchProvider, logger logSDK.Logger, apiKeyProvider APIKeyProvider) (*WebSearchTool, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if apiKeyProvider == nil {
		return nil, errors.New("api key provider is required")
	}

	return &WebSearchTool{
		searchProvider: provider,
		logger:         logger,
		apiKeyProvider: apiKeyProvider,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *WebSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"web_search",
		mcp.WithDescription("Search the public web and return the upstream result payload."),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Plain text search query."),
		),
		mcp.WithString(
			"api_key",
			mcp.Description("Search API key. Falls back to the transport bearer token when omitted."),
		),
		mcp.WithString(
			"type",
			mcp.Description("Result category."),
			mcp.Enum("web", "images", "news"),
			mcp.DefaultString("web"),
		),
		mcp.WithString(
			"provider",
			mcp.Description("Backing search provider."),
			mcp.Enum("google", "bing"),
		),
		mcp.WithNumber(
			"count",
			mcp.Description("Desired result count."),
			mcp.Min(0),
			mcp.Max(20),
		),
		mcp.WithNumber(
			"num",
			mcp.Description("Alternate name for the result count; forwarded alongside count when both are given."),
			mcp.Min(0),
			mcp.Max(20),
		),
		mcp.WithString(
			"gl",
			mcp.Description("Country code bias, e.g. us."),
		),
		mcp.WithString(
			"hl",
			mcp.Description("Language code bias, e.g. en."),
		),
		mcp.WithString(
			"location",
			mcp.Description("Free-text location bias."),
		),
		mcp.WithNumber(
			"page",
			mcp.Description("Result page number."),
			mcp.Min(1),
		),
		mcp.WithBoolean(
			"fallback",
			mcp.Description("Allow upstream to fall back to another provider on failure."),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean(
			"nfpr",
			mcp.Description("Exclude results auto-corrected from the original query."),
		),
		mcp.WithArray(
			"ext",
			mcp.Description("Restrict results to files with these extensions."),
			mcp.WithStringItems(),
		),
		mcp.WithArray(
			"filetype",
			mcp.Description("Restrict results to these file types."),
			mcp.WithStringItems(),
		),
		mcp.WithArray(
			"intitle",
			mcp.Description("Require these terms in the result title."),
			mcp.WithStringItems(),
		),
		mcp.WithArray(
			"site",
			mcp.Description("Restrict results to these sites."),
			mcp.WithStringItems(),
		),
		mcp.WithArray(
			"loc",
			mcp.Description("Restrict results to these languages."),
			mcp.WithStringItems(),
		),
		mcp.WithString(
			"return_format",
			mcp.Description("Response rendition requested via the Accept header."),
			mcp.Enum("json", "text"),
		),
		mcp.WithBoolean(
			"no_cache",
			mcp.Description("Ask upstream to bypass its cache."),
		),
		mcp.WithNumber(
			"cache_tolerance",
			mcp.Description("Acceptable upstream cache age in seconds."),
			mcp.Min(0),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the web_search tool logic using the configured dependencies.
func (t *WebSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return mcp.NewToolResultError("query cannot be empty"), nil
	}

	args := argumentsMap(req.Params.Arguments)
	apiKey := resolveAPIKey(ctx, args, t.apiKeyProvider)
	if apiKey == "" {
		t.logger.Warn("web_search missing api key", zap.Int("query_len", len(query)))
		return mcp.NewToolResultError("missing search api key"), nil
	}

	params := upstream.Params{"q": query, "api_key": apiKey}
	collectStrings(params, args, "type", "provider", "gl", "hl", "location", "return_format")
	collectInts(params, args, "count", "num", "page", "cache_tolerance")
	collectBools(params, args, "fallback", "nfpr", "no_cache")
	collectStringLists(params, args, "ext", "filetype", "intitle", "site", "loc")

	payload, err := t.searchProvider.Search(ctx, params)
	if err != nil {
		t.logger.Warn("web_search failed", zap.Error(err), zap.Int("query_len", len(query)))
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(payload), nil
}
