// Package mcp hosts the MCP server surface: transport wiring, request
// hooks, bearer-token extraction, and tool registration.
package mcp

import (
	"context"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/web-mcp/internal/mcp/tools"
	"github.com/Laisky/web-mcp/library/log"
)

type ctxKey string

const (
	keyAuthorization ctxKey = "authorization"
	keyTraceID       ctxKey = "trace_id"
)

// ServerName identifies this MCP implementation during the handshake.
const ServerName = "web-mcp"

// Server wraps the MCP server state for the HTTP transport.
type Server struct {
	handler http.Handler
	logger  logSDK.Logger
}

// NewServer constructs a remote MCP server exposing the given tools under a
// single streamable HTTP handler. Tools disabled by settings are skipped.
func NewServer(logger logSDK.Logger, settings ToolsSettings, toolset ...tools.Tool) (*Server, error) {
	if len(toolset) == 0 {
		return nil, errors.New("at least one tool is required")
	}
	if logger == nil {
		logger = log.Logger
	}

	hooks := newMCPHooks(logger.Named("mcp_hooks"))

	mcpServer := srv.NewMCPServer(
		ServerName,
		"1.0.0",
		srv.WithToolCapabilities(true),
		srv.WithInstructions("Use web_fetch to retrieve page content, web_search to query the public web, and flight_search to query flight offers."),
		srv.WithRecovery(),
		srv.WithHooks(hooks),
	)

	streamable := srv.NewStreamableHTTPServer(
		mcpServer,
		srv.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			ctx = context.WithValue(ctx, keyAuthorization, r.Header.Get("Authorization"))
			return context.WithValue(ctx, keyTraceID, uuid.NewString())
		}),
	)

	s := &Server{
		handler: streamable,
		logger:  logger.Named("mcp"),
	}

	for _, tool := range toolset {
		definition := tool.Definition()
		if !settings.Enabled(definition.Name) {
			s.logger.Info("tool disabled by settings", zap.String("tool", definition.Name))
			continue
		}
		mcpServer.AddTool(definition, tool.Handle)
	}

	return s, nil
}

// Handler returns the HTTP handler that should be mounted to serve MCP traffic.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// APIKeyFromContext extracts the bearer token propagated from the transport's
// Authorization header, with the Bearer prefix stripped.
func APIKeyFromContext(ctx context.Context) string {
	authHeader, _ := ctx.Value(keyAuthorization).(string)
	return extractAPIKey(authHeader)
}

func extractAPIKey(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	value := strings.TrimSpace(authHeader)
	const prefix = "Bearer "
	if strings.HasPrefix(strings.ToLower(value), strings.ToLower(prefix)) {
		return strings.TrimSpace(value[len(prefix):])
	}

	return value
}

func newMCPHooks(logger logSDK.Logger) *srv.Hooks {
	if logger == nil {
		return nil
	}

	hooks := &srv.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcpgo.MCPMethod, message any) {
		logger.Debug("mcp request received", hookLogFields(ctx, id, method)...)
	})

	hooks.AddOnSuccess(func(ctx context.Context, id any, method mcpgo.MCPMethod, message any, result any) {
		logger.Info("mcp request succeeded", hookLogFields(ctx, id, method)...)
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcpgo.MCPMethod, message any, err error) {
		fields := append(hookLogFields(ctx, id, method), zap.Error(err))
		logger.Error("mcp request failed", fields...)
	})

	hooks.AddOnRegisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session registered", zap.String("session_id", session.SessionID()))
	})

	hooks.AddOnUnregisterSession(func(ctx context.Context, session srv.ClientSession) {
		logger.Info("mcp session unregistered", zap.String("session_id", session.SessionID()))
	})

	return hooks
}

func hookLogFields(ctx context.Context, id any, method mcpgo.MCPMethod) []zap.Field {
	fields := []zap.Field{
		zap.Any("request_id", id),
		zap.String("method", string(method)),
	}

	if traceID, ok := ctx.Value(keyTraceID).(string); ok {
		fields = append(fields, zap.String("trace_id", traceID))
	}

	if session := srv.ClientSessionFromContext(ctx); session != nil {
		fields = append(fields, zap.String("session_id", session.SessionID()))
	}

	return fields
}
