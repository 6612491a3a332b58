package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/modemobile/todo-rewards/internal/api/middleware"
	"github.com/modemobile/todo-rewards/internal/api/rest"
	"github.com/modemobile/todo-rewards/internal/api/shared/executor"
	"github.com/modemobile/todo-rewards/internal/auth"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/providers/ethereum"
	"github.com/modemobile/todo-rewards/internal/ratelimit"
	"github.com/modemobile/todo-rewards/internal/rewards"
	"github.com/modemobile/todo-rewards/internal/todo"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	Executor       executor.Config
}

// Dependencies are the services served by the API
type Dependencies struct {
	Auth    auth.Service
	Todos   todo.Service
	Rewards rewards.Service
	Chain   ethereum.EthereumClient
	Limiter ratelimit.Limiter
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, deps Dependencies) *Server {
	return &Server{
		config: cfg,
		deps:   deps,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))

	// Create shared executor
	exec := executor.NewExecutor(s.config.Executor, s.deps.Auth, s.deps.Todos, s.deps.Rewards, s.deps.Chain)

	// Setup REST routes
	rest.SetupRoutes(router, rest.NewHandler(exec), s.deps.Auth, s.deps.Limiter)

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server and releases the in-memory stores
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	if s.deps.Limiter != nil {
		s.deps.Limiter.Close()
	}
	if s.deps.Auth != nil {
		s.deps.Auth.Close()
	}
	if s.deps.Todos != nil {
		s.deps.Todos.Close()
	}

	return nil
}
