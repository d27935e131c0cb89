// Package server exposes the download API over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ytfetch-cli/ytfetch/fetch"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/selector"
	"github.com/ytfetch-cli/ytfetch/strategy"
)

const shutdownTimeout = 10 * time.Second

// Service is the retrieval API the handlers drive.
type Service interface {
	Info(ctx context.Context, url string) (*fetch.InfoResponse, error)
	Plan(ctx context.Context, req media.Request) (selector.Decision, *media.Metadata, error)
	Retrieve(ctx context.Context, req media.Request) (*strategy.Result, error)
}

// Server is the HTTP front of a Service.
type Server struct {
	service Service
	engine  *gin.Engine
	http    *http.Server
}

// New builds the routes for service and binds them to addr.
func New(addr string, service Service) *Server {
	s := &Server{service: service}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(requestID())
	s.engine.Use(accessLog())

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/download", s.handleDownload)
	s.engine.HEAD("/download", s.handleProbe)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 30 * time.Second,
		// Downloads stream for as long as they take.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler returns the routed engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
