package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/web-mcp/internal/mcp"
	"github.com/Laisky/web-mcp/internal/mcp/tools"
	"github.com/Laisky/web-mcp/internal/web"
	"github.com/Laisky/web-mcp/library/log"
	"github.com/Laisky/web-mcp/library/reader"
	"github.com/Laisky/web-mcp/library/serp"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `serve the MCP tools over streamable HTTP`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runAPI()
	},
}

func init() {
	rootCMD.AddCommand(apiCMD)
}

func runAPI() {
	contentReader := reader.NewReader(
		reader.WithEndpoint(gconfig.Shared.GetString("settings.upstream.reader_endpoint")),
		reader.WithLogger(log.Logger.Named("reader")),
	)
	searchEngine := serp.NewSearchEngine(
		serp.WithSearchEndpoint(gconfig.Shared.GetString("settings.upstream.search_endpoint")),
		serp.WithSearchLogger(log.Logger.Named("serp_search")),
	)
	flightEngine := serp.NewFlightEngine(
		serp.WithFlightsEndpoint(gconfig.Shared.GetString("settings.upstream.flights_endpoint")),
		serp.WithFlightsLogger(log.Logger.Named("serp_flights")),
	)

	fetchTool, err := tools.NewWebFetchTool(contentReader, log.Logger.Named("web_fetch"), mcp.APIKeyFromContext)
	if err != nil {
		log.Logger.Panic("new web_fetch tool", zap.Error(err))
	}
	searchTool, err := tools.NewWebSearchTool(searchEngine, log.Logger.Named("web_search"), mcp.APIKeyFromContext)
	if err != nil {
		log.Logger.Panic("new web_search tool", zap.Error(err))
	}
	flightTool, err := tools.NewFlightSearchTool(flightEngine, log.Logger.Named("flight_search"), mcp.APIKeyFromContext)
	if err != nil {
		log.Logger.Panic("new flight_search tool", zap.Error(err))
	}

	server, err := mcp.NewServer(log.Logger, mcp.LoadToolsSettingsFromConfig(),
		fetchTool, searchTool, flightTool)
	if err != nil {
		log.Logger.Panic("new mcp server", zap.Error(err))
	}

	web.RunServer(gconfig.Shared.GetString("listen"), server.Handler())
}
