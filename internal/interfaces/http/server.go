// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application
// service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadflow/ethics-review/internal/application/service"
	"github.com/acadflow/ethics-review/pkg/auth"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Services bundles the application services the HTTP layer exposes
type Services struct {
	Transition   service.TransitionService
	Workflow     service.WorkflowService
	Application  service.ApplicationService
	Notification service.NotificationService
	Auth         service.AuthService
	Report       service.ReportService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	tokens     *auth.Manager
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, tokens *auth.Manager, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   config,
		router:   gin.New(),
		services: services,
		tokens:   tokens,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(
		s.services.Transition,
		s.services.Workflow,
		s.services.Application,
		s.services.Notification,
		s.services.Auth,
		s.services.Report,
		s.logger,
	)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	// Public auth endpoints
	authGroup := s.router.Group("/api/auth")
	{
		authGroup.POST("/login", handlers.Login)
	}

	// Everything else requires a valid token
	api := s.router.Group("/api", RequireAuth(s.tokens))
	{
		// Review actions
		api.POST("/process", handlers.Act)

		// Applications
		api.POST("/applications", handlers.SubmitApplication)
		api.GET("/applications", handlers.ListApplications)
		api.GET("/applications/archived", handlers.ListArchivedApplications)
		api.GET("/applications/:id", handlers.GetApplication)
		api.PUT("/applications/:id", handlers.UpdateApplication)
		api.GET("/applications/:id/reviews", handlers.ListApplicationReviews)

		// Notifications
		api.GET("/notifications", handlers.ListNotifications)
		api.PUT("/notifications/:id/read", handlers.MarkNotificationRead)

		// Workflow definitions are readable by any reviewer
		api.GET("/workflows", handlers.ListWorkflows)

		// Administrative surface
		admin := api.Group("", RequireAdmin())
		{
			admin.POST("/auth/register", handlers.Register)

			admin.POST("/workflows", handlers.CreateWorkflow)
			admin.PUT("/workflows/:id", handlers.UpdateWorkflow)
			admin.DELETE("/workflows/:id", handlers.DeleteWorkflow)
			admin.PUT("/workflows/:id/set-current", handlers.SetCurrentWorkflow)

			admin.GET("/reports/archived", handlers.ArchivedReport)
		}
	}
}

// Start starts the HTTP server and blocks until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
