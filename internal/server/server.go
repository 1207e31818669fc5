// Package server exposes the backend over HTTP with Gin.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/datadynamo/dynamo/internal/blob"
	"github.com/datadynamo/dynamo/internal/dataset"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB       *gorm.DB
	Blob     blob.Store
	Profiler dataset.Profiler
	Port     int
	Origins  []string
	Out      io.Writer
}

// Start launches the API server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("server: db is required")
	}
	if opts.Blob == nil {
		return fmt.Errorf("server: blob store is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8000
	}

	router := NewRouter(opts)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "API listening at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// NewRouter builds the Gin engine with all routes registered.
func NewRouter(opts StartOpts) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if len(opts.Origins) > 0 {
		router.Use(corsMiddleware(opts.Origins))
	}

	intake := dataset.Intake{DB: opts.DB, Blob: opts.Blob, Profiler: opts.Profiler}
	registerRoutes(router, opts.DB, intake)
	return router
}
