package serp

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"

	"github.com/Laisky/web-mcp/library/log"
	"github.com/Laisky/web-mcp/library/upstream"
)

const (
	defaultFlightsEndpoint = "https://serpapi.com/search.json"
	flightsEngineName      = "google_flights"
)

// flightQueryFields serialises every flight parameter onto the query string.
// flight_type and async_search are renamed on the wire; everything else keeps
// its original name. Absent fields are omitted entirely.
var flightQueryFields = []upstream.Field{
	{Name: "departure_id", Encode: upstream.EncodeQuery},
	{Name: "arrival_id", Encode: upstream.EncodeQuery},
	{Name: "gl", Encode: upstream.EncodeQuery},
	{Name: "hl", Encode: upstream.EncodeQuery},
	{Name: "currency", Encode: upstream.EncodeQuery},
	{Name: "flight_type", Wire: "type", Encode: upstream.EncodeQuery},
	{Name: "travel_class", Encode: upstream.EncodeQuery},
	{Name: "outbound_date", Encode: upstream.EncodeQuery},
	{Name: "return_date", Encode: upstream.EncodeQuery},
	{Name: "multi_city_json", Encode: upstream.EncodeQuery},
	{Name: "adults", Encode: upstream.EncodeQuery},
	{Name: "children", Encode: upstream.EncodeQuery},
	{Name: "infants_in_seat", Encode: upstream.EncodeQuery},
	{Name: "infants_on_lap", Encode: upstream.EncodeQuery},
	{Name: "sort_by", Encode: upstream.EncodeQuery},
	{Name: "stops", Encode: upstream.EncodeQuery},
	{Name: "exclude_airlines", Encode: upstream.EncodeQuery},
	{Name: "include_airlines", Encode: upstream.EncodeQuery},
	{Name: "bags", Encode: upstream.EncodeQuery},
	{Name: "max_price", Encode: upstream.EncodeQuery},
	{Name: "outbound_times", Encode: upstream.EncodeQuery},
	{Name: "return_times", Encode: upstream.EncodeQuery},
	{Name: "emissions", Encode: upstream.EncodeQuery},
	{Name: "layover_duration", Encode: upstream.EncodeQuery},
	{Name: "exclude_conns", Encode: upstream.EncodeQuery},
	{Name: "max_duration", Encode: upstream.EncodeQuery},
	{Name: "departure_token", Encode: upstream.EncodeQuery},
	{Name: "booking_token", Encode: upstream.EncodeQuery},
	{Name: "no_cache", Encode: upstream.EncodeQuery},
	{Name: "async_search", Wire: "async", Encode: upstream.EncodeQuery},
	{Name: "zero_trace", Encode: upstream.EncodeQuery},
}

var flightDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// flightRules holds the cross-field constraints checked before any request is
// built. Every rule is evaluated so the caller sees all violations at once.
var flightRules = []upstream.Rule{
	upstream.MutuallyExclusive("exclude_airlines", "include_airlines"),
	upstream.MutuallyExclusive("departure_token", "booking_token"),
	upstream.MutuallyExclusive("no_cache", "async_search"),
	upstream.RequiredWhenEquals("flight_type", "1", "return_date"),
	upstream.RequiredWhenEquals("flight_type", "3", "multi_city_json"),
	upstream.MatchesPattern("outbound_date", flightDatePattern, "outbound_date must match YYYY-MM-DD"),
	upstream.MatchesPattern("return_date", flightDatePattern, "return_date must match YYYY-MM-DD"),
}

// FlightOption configures the FlightEngine instance.
type FlightOption func(*FlightEngine)

// WithFlightsEndpoint overrides the aggregator endpoint, primarily for testing.
func WithFlightsEndpoint(endpoint string) FlightOption {
	return func(engine *FlightEngine) {
		trimmed := strings.TrimSpace(endpoint)
		if trimmed != "" {
			engine.endpoint = trimmed
		}
	}
}

// WithFlightsHTTPClient overrides the HTTP client used for outbound calls.
func WithFlightsHTTPClient(client *http.Client) FlightOption {
	return func(engine *FlightEngine) {
		if client != nil {
			engine.client = upstream.NewClient(
				upstream.WithHTTPClient(client),
				upstream.WithLogger(engine.logger),
			)
		}
	}
}

// WithFlightsLogger overrides the default logger.
func WithFlightsLogger(logger logSDK.Logger) FlightOption {
	return func(engine *FlightEngine) {
		if logger != nil {
			engine.logger = logger
		}
	}
}

// FlightEngine queries the flights aggregator with a fixed engine parameter.
type FlightEngine struct {
	endpoint string
	client   *upstream.Client
	logger   logSDK.Logger
}

// NewFlightEngine constructs a FlightEngine against the default endpoint.
func NewFlightEngine(opts ...FlightOption) *FlightEngine {
	engine := &FlightEngine{
		endpoint: defaultFlightsEndpoint,
		logger:   log.Logger.Named("serp_flights"),
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

// Search validates the cross-field constraints, performs the aggregator
// request, and returns the JSON body re-serialised with indentation.
func (e *FlightEngine) Search(ctx context.Context, params upstream.Params) (string, error) {
	apiKey, _ := params.String("api_key")
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", upstream.NewValidationError("api_key", "api key is required")
	}

	if err := upstream.Validate(params, flightRules); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, "create flights request")
	}

	values := req.URL.Query()
	values.Set("engine", flightsEngineName)
	values.Set("api_key", apiKey)
	if err = upstream.ApplyFields(flightQueryFields, params, nil, values, nil); err != nil {
		return "", errors.Wrap(err, "apply flight query fields")
	}
	req.URL.RawQuery = values.Encode()

	body, err := e.client.Do(req)
	if err != nil {
		return "", err
	}

	var payload any
	if err = json.Unmarshal([]byte(body), &payload); err != nil {
		return "", errors.Wrap(err, "unmarshal flights response")
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal flights response")
	}

	return string(pretty), nil
}
