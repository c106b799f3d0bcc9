package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/web-mcp/internal/mcp"
	"github.com/Laisky/web-mcp/library/log"
)

var clientCMD = &cobra.Command{
	Use:   "client",
	Short: "client",
	Long:  `demonstration client that invokes the served MCP tools`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := cmd.Flags().GetString("server")
		if err != nil {
			return errors.Wrap(err, "get server flag")
		}
		apiKey, err := cmd.Flags().GetString("api-key")
		if err != nil {
			return errors.Wrap(err, "get api-key flag")
		}
		target, err := cmd.Flags().GetString("url")
		if err != nil {
			return errors.Wrap(err, "get url flag")
		}
		query, err := cmd.Flags().GetString("query")
		if err != nil {
			return errors.Wrap(err, "get query flag")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		return runClient(ctx, server, apiKey, target, query)
	},
}

func init() {
	clientCMD.Flags().String("server", "http://localhost:8080/mcp", "MCP server endpoint")
	clientCMD.Flags().String("api-key", "", "upstream api key forwarded as bearer token")
	clientCMD.Flags().String("url", "https://example.com", "target url for web_fetch")
	clientCMD.Flags().String("query", "golang", "query for web_search")
	rootCMD.AddCommand(clientCMD)
}

func runClient(ctx context.Context, server, apiKey, target, query string) error {
	var opts []transport.StreamableHTTPCOption
	if apiKey != "" {
		opts = append(opts, transport.WithHTTPHeaders(map[string]string{
			"Authorization": "Bearer " + apiKey,
		}))
	}

	c, err := mcpclient.NewStreamableHttpClient(server, opts...)
	if err != nil {
		return errors.Wrap(err, "new streamable http client")
	}
	defer c.Close()

	if err = c.Start(ctx); err != nil {
		return errors.Wrap(err, "start client")
	}

	initReq := mcpgo.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpgo.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpgo.Implementation{
		Name:    mcp.ServerName + "-client",
		Version: "1.0.0",
	}
	if _, err = c.Initialize(ctx, initReq); err != nil {
		return errors.Wrap(err, "initialize session")
	}

	listed, err := c.ListTools(ctx, mcpgo.ListToolsRequest{})
	if err != nil {
		return errors.Wrap(err, "list tools")
	}
	for _, tool := range listed.Tools {
		fmt.Printf("tool: %s\n", tool.Name)
	}

	// the tools are independent and stateless, so invoke them concurrently
	var pool errgroup.Group
	pool.Go(func() error {
		return invokeTool(ctx, c, "web_fetch", map[string]any{"url": target})
	})
	pool.Go(func() error {
		return invokeTool(ctx, c, "web_search", map[string]any{"query": query})
	})

	return pool.Wait()
}

func invokeTool(ctx context.Context, c *mcpclient.Client, name string, args map[string]any) error {
	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.CallTool(ctx, req)
	if err != nil {
		return errors.Wrapf(err, "call %s", name)
	}

	for _, content := range result.Content {
		if text, ok := content.(mcpgo.TextContent); ok {
			fmt.Printf("---- %s (error=%v) ----\n%s\n", name, result.IsError, text.Text)
		}
	}

	log.Logger.Info("tool invoked", zap.String("tool", name), zap.Bool("is_error", result.IsError))
	return nil
}
