package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fixora/insights/infrastructure/http/middleware"
	"github.com/fixora/insights/infrastructure/http/response"
	"github.com/fixora/insights/infrastructure/service/logger"
)

// Server represents the HTTP server
type Server struct {
	addr    string
	router  *mux.Router
	handler http.Handler
	server  *http.Server
	logger  logger.Logger
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host                 string
	Port                 string
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	CORSOrigins          []string
	CORSAllowCredentials bool
}

// NewServer creates a new HTTP server
func NewServer(config ServerConfig, dashboard DashboardService, sessions SessionService, log logger.Logger) *Server {
	// Create router
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	// Register routes
	NewDashboardHandler(dashboard).RegisterRoutes(router)
	NewSessionHandler(sessions).RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, "ok", map[string]interface{}{"status": "ok"})
	}).Methods("GET")

	// Add middleware
	router.Use(middleware.CorrelationIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.RecoveryMiddleware(log))

	// CORS wraps the router so preflight requests never reach method matching
	handler := middleware.CORSMiddleware(router, config.CORSOrigins, config.CORSAllowCredentials)

	addr := config.Host + ":" + config.Port
	return &Server{
		addr:    addr,
		router:  router,
		handler: handler,
		logger:  log,
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{"addr": s.addr})
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
