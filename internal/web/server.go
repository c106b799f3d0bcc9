// Package web hosts the gin server that serves MCP traffic.
package web

import (
	"net/http"

	ginMw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/web-mcp/library/log"
)

// NewRouter assembles the gin engine with logging, recovery, a health probe,
// and the MCP handler mounted at /mcp.
func NewRouter(mcpHandler http.Handler) *gin.Engine {
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		ginMw.NewLoggerMiddleware(
			ginMw.WithLoggerMwColored(),
			ginMw.WithLevel(log.Logger.Level().String()),
			ginMw.WithLogger(log.Logger.Named("gin")),
		),
	)

	engine.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})

	engine.Any("/mcp", ginMw.FromStd(mcpHandler.ServeHTTP))
	engine.Any("/mcp/*path", ginMw.FromStd(mcpHandler.ServeHTTP))

	return engine
}

// RunServer blocks serving HTTP traffic on addr until the process exits.
func RunServer(addr string, mcpHandler http.Handler) {
	engine := NewRouter(mcpHandler)

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("http server exit", zap.Error(engine.Run(addr)))
}
