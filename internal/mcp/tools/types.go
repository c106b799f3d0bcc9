package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// APIKeyProvider extracts an upstream API key from the request context,
// typically from the transport's Authorization header.
type APIKeyProvider func(context.Context) string

// Tool exposes the capabilities required by the MCP server registration lifecycle.
type Tool interface {
	Definition() mcp.Tool
	Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
