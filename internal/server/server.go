// Package server provides the HTTP API in front of the tool registry.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	mcpgo "github.com/mark3labs/mcp-go/server"
	"github.com/mcncl/jsonkit/internal/metrics"
	"github.com/mcncl/jsonkit/internal/tools"
	"go.uber.org/zap"
)

const (
	V1PathPrefix = "/v1"

	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"

	shutdownTimeout = 10 * time.Second
)

type ServerOptions struct {
	// Addr is the address to bind, e.g. ":8080".
	Addr string

	Registry *tools.Registry

	// Metrics is optional. When set, /metrics serves its registry.
	Metrics *metrics.Metrics

	// MCPServer is optional. When set, it is served over streamable HTTP on /mcp.
	MCPServer *mcpgo.MCPServer

	Logger *zap.Logger
}

// Server is the jsonkit HTTP API.
type Server struct {
	addr     string
	router   *gin.Engine
	registry *tools.Registry
	metrics  *metrics.Metrics
	mcp      *mcpgo.MCPServer
	logger   *zap.Logger
}

// NewServer builds the server and its routes.
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("server needs a tool registry")
	}
	s := &Server{
		addr:     opts.Addr,
		registry: opts.Registry,
		metrics:  opts.Metrics,
		mcp:      opts.MCPServer,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.router = s.setupRouter()
	return s, nil
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to run the server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server: %w", err)
	}
	return nil
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog())

	r.GET(
		"/health",
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		},
	)

	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	if s.mcp != nil {
		r.Any("/mcp", gin.WrapH(mcpgo.NewStreamableHTTPServer(s.mcp)))
	}

	v1 := r.Group(V1PathPrefix)
	{
		v1.GET("/tools", s.listToolsHandler())
		v1.POST("/tools/:type", s.executeToolHandler())
	}

	return r
}

// requestID keeps a caller supplied X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", c.GetString(RequestIDHeader)),
		)
	}
}
