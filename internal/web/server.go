package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/config"
	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/search"
	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/web/handlers"
	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	store      store.Store
	engine     *search.Engine
	logger     *slog.Logger
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server over the given store
func NewServer(cfg *config.Config, st store.Store, logger *slog.Logger) *Server {
	server := &Server{
		config: cfg,
		store:  st,
		engine: search.NewEngine(st),
		logger: logger,
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// Handler exposes the configured router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	searchHandler := &handlers.SearchHandler{Engine: s.engine, Logger: s.logger}
	propertyHandler := &handlers.PropertyHandler{Store: s.store, Validator: s.engine.Validator(), Logger: s.logger}
	containerHandler := &handlers.ContainerHandler{Store: s.store, Logger: s.logger}
	statsHandler := &handlers.StatsHandler{Store: s.store, Logger: s.logger}

	api := s.router.PathPrefix("/api").Subrouter()

	// Search endpoints
	api.HandleFunc("/properties/search", searchHandler.Search).Methods("GET")

	// Property endpoints
	api.HandleFunc("/properties/{id}", propertyHandler.GetProperty).Methods("GET")
	api.HandleFunc("/states/{stateId}/counties/{countyId}/properties/{propertyId}",
		propertyHandler.GetScopedProperty).Methods("GET")

	// Container endpoints
	api.HandleFunc("/states", containerHandler.ListStates).Methods("GET")
	api.HandleFunc("/states/{stateId}/counties", containerHandler.ListCounties).Methods("GET")

	// Statistics endpoint
	api.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Apply middleware
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging(s.logger))
}

// Start runs the server until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
