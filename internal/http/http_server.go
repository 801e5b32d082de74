package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/markorv.net/isaharness/internal/config"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	auth2 "gitlab.com/markorv.net/isaharness/internal/core/services/auth"
	"gitlab.com/markorv.net/isaharness/internal/core/services/results"
	"gitlab.com/markorv.net/isaharness/internal/handlers"
	"gitlab.com/markorv.net/isaharness/internal/handlers/auth"
	"gitlab.com/markorv.net/isaharness/internal/handlers/runs"
)

type ServiceProvider struct {
	resultService results.IResultService
	authService   auth2.IAuthService
	jwtService    primary.JWTService
}

func NewServiceProvider(
	resultService results.IResultService,
	authService auth2.IAuthService,
	jwtService primary.JWTService,
) *ServiceProvider {
	return &ServiceProvider{
		resultService: resultService,
		authService:   authService,
		jwtService:    jwtService,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	cfg             *config.HTTPConfig
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(cfg *config.HTTPConfig, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		cfg:             cfg,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.resultService == nil || s.ServiceProvider.authService == nil || s.ServiceProvider.jwtService == nil {
		return fmt.Errorf("%s: service provider is incomplete", s.ServiceName)
	}
	r := mux.NewRouter()
	middleware := handlers.New(s.ServiceProvider.jwtService, auth2.PermissionReadRuns, s.logger)
	auth.NewHandler(s.ServiceProvider.authService, s.logger).RegisterRoutes(r)
	runs.NewRunHandler(s.ServiceProvider.resultService, s.logger).RegisterRoutes(r, middleware.JWTMiddleware)
	s.router = r
	return nil
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background; errc receives the error if the listener
// fails for any reason other than Stop
func (s *Server) Start(errc chan<- error) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	go func() {
		s.logger.Info("Server listening", "service", s.ServiceName, "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errc <- err
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
