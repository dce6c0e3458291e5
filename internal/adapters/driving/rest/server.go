// Package rest serves the pipeline over HTTP with gin.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driving"
	"github.com/custodia-labs/textprep/internal/logger"
)

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("rest: pipeline service is required")

// Ports aggregates the driving ports the HTTP API is built on.
type Ports struct {
	Pipeline driving.PipelineService

	// Profile is optional; profile routes return 404 without it.
	Profile driving.ProfileService
}

// Server is the HTTP API.
type Server struct {
	ports   Ports
	engine  *gin.Engine
	options domain.NormaliseOptions
}

// Option configures the server.
type Option func(*Server)

// WithNormaliseOptions sets the options applied when a request omits them.
func WithNormaliseOptions(opts domain.NormaliseOptions) Option {
	return func(s *Server) {
		s.options = opts
	}
}

// NewServer creates the server and registers its routes.
func NewServer(ports Ports, opts ...Option) (*Server, error) {
	if ports.Pipeline == nil {
		return nil, ErrMissingPipelineService
	}

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		ports:   ports,
		engine:  gin.New(),
		options: domain.DefaultNormaliseOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery(), requestLogger())
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/v1")
	{
		v1.POST("/normalise", s.handleNormalise)
		v1.POST("/chunk", s.handleChunk)
		v1.POST("/process", s.handleProcess)
		v1.GET("/documents/:id/status", s.handleStatus)
		v1.GET("/profiles/:businessId", s.handleProfile)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return nil
}

// requestLogger writes one debug line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
