// Package rest serves the auth API over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/logging"
	"github.com/dmitrijs2005/todoauth/internal/server/metrics"
	"github.com/dmitrijs2005/todoauth/internal/server/services"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// AuthService is the business logic behind the auth routes.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)
	DemoLogin(ctx context.Context) (*services.AuthResult, error)
}

type HTTPServer struct {
	address  string
	auth     AuthService
	logger   logging.Logger
	metrics  *metrics.Recorder
	gatherer prometheus.Gatherer
}

func NewHTTPServer(a string, l logging.Logger, as AuthService, rec *metrics.Recorder, g prometheus.Gatherer) *HTTPServer {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		auth:     as,
		metrics:  rec,
		gatherer: g,
	}
}

// Handler returns the router with every route registered.
func (s *HTTPServer) Handler() http.Handler {
	router := httprouter.New()

	router.POST("/auth/login", s.handle(metrics.OperationLogin, http.StatusOK, s.login))
	router.POST("/auth/register", s.handle(metrics.OperationRegister, http.StatusCreated, s.register))
	router.POST("/auth/demo", s.handle(metrics.OperationDemoLogin, http.StatusCreated, s.demoLogin))
	router.GET("/health", s.health)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
