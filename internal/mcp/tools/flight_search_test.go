package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/web-mcp/library/log"
	"github.com/Laisky/web-mcp/library/upstream"
)

func mustFlightSearchTool(t *testing.T, provider FlightProvider, keyProvider APIKeyProvider) *FlightSearchTool {
	t.Helper()

	tool, err := NewFlightSearchTool(provider, log.Logger.Named("test_flight_search"), keyProvider)
	require.NoError(t, err)
	return tool
}

func TestFlightSearchHandleRequiresAPIKey(t *testing.T) {
	tool := mustFlightSearchTool(t,
		searchFunc(func(context.Context, upstream.Params) (string, error) { return "ignored", nil }),
		noContextKey,
	)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "missing aggregator api key", resultText(t, result))
}

func TestFlightSearchHandleForwardsTypedParameters(t *testing.T) {
	var gotParams upstream.Params

	tool := mustFlightSearchTool(t,
		searchFunc(func(_ context.Context, params upstream.Params) (string, error) {
			gotParams = params
			return "{}", nil
		}),
		func(context.Context) string { return "key" },
	)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"departure_id":  "SFO",
		"arrival_id":    "NRT",
		"flight_type":   "2",
		"travel_class":  float64(3),
		"adults":        float64(1),
		"outbound_date": "2026-09-01",
		"async_search":  true,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.Equal(t, "key", gotParams["api_key"])
	require.Equal(t, "SFO", gotParams["departure_id"])
	require.Equal(t, "NRT", gotParams["arrival_id"])
	require.Equal(t, "2", gotParams["flight_type"])
	require.Equal(t, 3, gotParams["travel_class"])
	require.Equal(t, 1, gotParams["adults"])
	require.Equal(t, "2026-09-01", gotParams["outbound_date"])
	require.Equal(t, true, gotParams["async_search"])

	require.False(t, gotParams.Has("return_date"))
	require.False(t, gotParams.Has("no_cache"))
	require.False(t, gotParams.Has("stops"))
}

func TestFlightSearchHandleReportsAllViolations(t *testing.T) {
	tool := mustFlightSearchTool(t,
		searchFunc(func(_ context.Context, params upstream.Params) (string, error) {
			return "", upstream.Validate(params, []upstream.Rule{
				upstream.MutuallyExclusive("exclude_airlines", "include_airlines"),
				upstream.RequiredWhenEquals("flight_type", "1", "return_date"),
			})
		}),
		func(context.Context) string { return "key" },
	)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"exclude_airlines": "UA",
		"include_airlines": "DL",
		"flight_type":      "1",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	text := resultText(t, result)
	require.Contains(t, text, "validation failed")
	require.Contains(t, text, "exclude_airlines")
	require.Contains(t, text, "return_date")
}

func TestFlightSearchHandleReturnsProviderPayload(t *testing.T) {
	const payload = "{\n  \"best_flights\": []\n}"

	tool := mustFlightSearchTool(t,
		searchFunc(func(context.Context, upstream.Params) (string, error) { return payload, nil }),
		func(context.Context) string { return "key" },
	)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{"flight_type": "2"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, payload, resultText(t, result))
}

func TestNewFlightSearchToolRequiresDependencies(t *testing.T) {
	_, err := NewFlightSearchTool(nil, log.Logger, noContextKey)
	require.Error(t, err)

	_, err = NewFlightSearchTool(searchFunc(func(context.Context, upstream.Params) (string, error) { return "", nil }), nil, noContextKey)
	require.Error(t, err)

	_, err = NewFlightSearchTool(searchFunc(func(context.Context, upstream.Params) (string, error) { return "", nil }), log.Logger, nil)
	require.Error(t, err)
}
