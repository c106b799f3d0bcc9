package mcp

import (
	"context"
	"testing"

	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/web-mcp/internal/mcp/tools"
	"github.com/Laisky/web-mcp/library/reader"
	"github.com/Laisky/web-mcp/library/serp"
)

func TestNewServerRequiresTools(t *testing.T) {
	srv, err := NewServer(glog.Shared, ToolsSettings{})
	require.Nil(t, srv)
	require.Error(t, err)
}

func TestNewServerExposesHandler(t *testing.T) {
	fetchTool, err := tools.NewWebFetchTool(reader.NewReader(), glog.Shared, APIKeyFromContext)
	require.NoError(t, err)

	searchTool, err := tools.NewWebSearchTool(serp.NewSearchEngine(), glog.Shared, APIKeyFromContext)
	require.NoError(t, err)

	flightTool, err := tools.NewFlightSearchTool(serp.NewFlightEngine(), glog.Shared, APIKeyFromContext)
	require.NoError(t, err)

	settings := ToolsSettings{
		WebFetchEnabled:     true,
		WebSearchEnabled:    true,
		FlightSearchEnabled: true,
	}

	srv, err := NewServer(glog.Shared, settings, fetchTool, searchTool, flightTool)
	require.NoError(t, err)
	require.NotNil(t, srv.Handler())
}

func TestExtractAPIKey(t *testing.T) {
	require.Equal(t, "", extractAPIKey(""))
	require.Equal(t, "token", extractAPIKey("Bearer token"))
	require.Equal(t, "token", extractAPIKey("bearer token"))
	require.Equal(t, "raw-value", extractAPIKey("raw-value"))
}

func TestAPIKeyFromContext(t *testing.T) {
	require.Equal(t, "", APIKeyFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), keyAuthorization, "Bearer secret")
	require.Equal(t, "secret", APIKeyFromContext(ctx))
}

func TestToolsSettingsEnabled(t *testing.T) {
	settings := ToolsSettings{WebFetchEnabled: true}

	require.True(t, settings.Enabled("web_fetch"))
	require.False(t, settings.Enabled("web_search"))
	require.False(t, settings.Enabled("flight_search"))
	require.False(t, settings.Enabled("unknown_tool"))
}
