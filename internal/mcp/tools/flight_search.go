package tools

import (
	"context"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/web-mcp/library/upstream"
)

// FlightProvider abstracts the flights aggregator upstream used by the tool.
type FlightProvider interface {
	Search(ctx context.Context, params upstream.Params) (string, error)
}

// FlightSearchTool implements the flight_search MCP tool.
type FlightSearchTool struct {
	flightProvider FlightProvider
	logger         logSDK.Logger
	apiKeyProvider APIKeyProvider
}

// NewFlightSearchTool constructs a FlightSearchTool with the provided dependencies.
func NewFlightSearchTool(provider FlightProvider, logger logSDK.Logger, apiKeyProvider APIKeyProvider) (*FlightSearchTool, error) {
	if provider == nil {
		return nil, errors.New("flight provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if apiKeyProvider == nil {
		return nil, errors.New("api key provider is required")
	}

	return &FlightSearchTool{
		flightProvider: provider,
		logger:         logger,
		apiKeyProvider: apiKeyProvider,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *FlightSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"flight_search",
		mcp.WithDescription("Search flights through the aggregator upstream and return the pretty-printed JSON payload."),
		mcp.WithString(
			"api_key",
			mcp.Description("Aggregator API key. Falls back to the transport bearer token when omitted."),
		),
		mcp.WithString(
			"departure_id",
			mcp.Description("Comma-joined departure airport codes or location ids."),
		),
		mcp.WithString(
			"arrival_id",
			mcp.Description("Comma-joined arrival airport codes or location ids."),
		),
		mcp.WithString("gl", mcp.Description("Country code bias, e.g. us.")),
		mcp.WithString("hl", mcp.Description("Language code bias, e.g. en.")),
		mcp.WithString("currency", mcp.Description("Currency code for returned prices, e.g. USD.")),
		mcp.WithString(
			"flight_type",
			mcp.Description("Trip type: 1 round trip, 2 one way, 3 multi-city."),
			mcp.Enum("1", "2", "3"),
		),
		mcp.WithNumber(
			"travel_class",
			mcp.Description("Travel class: 1 economy, 2 premium economy, 3 business, 4 first."),
			mcp.Min(1),
			mcp.Max(4),
		),
		mcp.WithString(
			"outbound_date",
			mcp.Description("Outbound date, YYYY-MM-DD."),
			mcp.Pattern(`^\d{4}-\d{2}-\d{2}$`),
		),
		mcp.WithString(
			"return_date",
			mcp.Description("Return date, YYYY-MM-DD. Required for round trips."),
			mcp.Pattern(`^\d{4}-\d{2}-\d{2}$`),
		),
		mcp.WithString(
			"multi_city_json",
			mcp.Description("JSON-encoded leg list. Required for multi-city trips."),
		),
		mcp.WithNumber("adults", mcp.Description("Number of adult passengers."), mcp.Min(0)),
		mcp.WithNumber("children", mcp.Description("Number of child passengers."), mcp.Min(0)),
		mcp.WithNumber("infants_in_seat", mcp.Description("Number of infants with a seat."), mcp.Min(0)),
		mcp.WithNumber("infants_on_lap", mcp.Description("Number of lap infants."), mcp.Min(0)),
		mcp.WithNumber(
			"sort_by",
			mcp.Description("Sort order: 1 top, 2 price, 3 departure time, 4 arrival time, 5 duration, 6 emissions."),
			mcp.Min(1),
			mcp.Max(6),
		),
		mcp.WithNumber(
			"stops",
			mcp.Description("Stop count: 0 any, 1 nonstop, 2 one stop or fewer, 3 two stops or fewer."),
			mcp.Min(0),
			mcp.Max(3),
		),
		mcp.WithString(
			"exclude_airlines",
			mcp.Description("Comma-joined airline codes to exclude. Conflicts with include_airlines."),
		),
		mcp.WithString(
			"include_airlines",
			mcp.Description("Comma-joined airline codes to include. Conflicts with exclude_airlines."),
		),
		mcp.WithNumber("bags", mcp.Description("Number of carry-on bags."), mcp.Min(0)),
		mcp.WithNumber("max_price", mcp.Description("Upper bound on ticket price."), mcp.Min(0)),
		mcp.WithString("outbound_times", mcp.Description("Outbound departure/arrival time ranges.")),
		mcp.WithString("return_times", mcp.Description("Return departure/arrival time ranges.")),
		mcp.WithNumber("emissions", mcp.Description("Emissions filter: 1 less-emissions flights only."), mcp.Min(1), mcp.Max(1)),
		mcp.WithString("layover_duration", mcp.Description("Layover duration range in minutes, comma-joined.")),
		mcp.WithString("exclude_conns", mcp.Description("Comma-joined connecting airport codes to exclude.")),
		mcp.WithNumber("max_duration", mcp.Description("Maximum flight duration in minutes."), mcp.Min(0)),
		mcp.WithString(
			"departure_token",
			mcp.Description("Pagination token selecting a departing flight. Conflicts with booking_token."),
		),
		mcp.WithString(
			"booking_token",
			mcp.Description("Pagination token selecting booking options. Conflicts with departure_token."),
		),
		mcp.WithBoolean(
			"no_cache",
			mcp.Description("Force a fresh aggregator fetch. Conflicts with async_search."),
		),
		mcp.WithBoolean(
			"async_search",
			mcp.Description("Submit the search asynchronously. Conflicts with no_cache."),
		),
		mcp.WithBoolean(
			"zero_trace",
			mcp.Description("Ask the aggregator to skip retaining the search server-side."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the flight_search tool logic using the configured dependencies.
func (t *FlightSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := argumentsMap(req.Params.Arguments)

	apiKey := resolveAPIKey(ctx, args, t.apiKeyProvider)
	if apiKey == "" {
		t.logger.Warn("flight_search missing api key")
		return mcp.NewToolResultError("missing aggregator api key"), nil
	}

	params := upstream.Params{"api_key": apiKey}
	collectStrings(params, args,
		"departure_id", "arrival_id", "gl", "hl", "currency", "flight_type",
		"outbound_date", "return_date", "multi_city_json",
		"exclude_airlines", "include_airlines",
		"outbound_times", "return_times", "layover_duration", "exclude_conns",
		"departure_token", "booking_token",
	)
	collectInts(params, args,
		"travel_class", "adults", "children", "infants_in_seat", "infants_on_lap",
		"sort_by", "stops", "bags", "max_price", "emissions", "max_duration",
	)
	collectBools(params, args, "no_cache", "async_search", "zero_trace")

	payload, err := t.flightProvider.Search(ctx, params)
	if err != nil {
		t.logger.Warn("flight_search failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(payload), nil
}
