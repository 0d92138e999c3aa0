// Package server exposes the journal over a gin JSON API plus named page
// routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/daybook/internal/auth"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Config holds listener settings
type Config struct {
	Addr         string
	SecureCookie bool
}

// Server wires the journal and identity services to HTTP routes
type Server struct {
	journal *journal.Service
	auth    *auth.Service
	cfg     Config
	engine  *gin.Engine
}

// New builds the router
func New(j *journal.Service, a *auth.Service, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	s := &Server{journal: j, auth: a, cfg: cfg}
	s.engine = s.routes()
	return s
}

// Handler returns the router for use with httptest or another server
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	<-errCh
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), s.identify())

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/logout", s.logout)
		authGroup.POST("/reset-password/request", s.requestReset)
		authGroup.POST("/reset-password", s.resetPassword)

		api.GET("/prompts", s.listPrompts)
		api.GET("/resources", s.listResources)
		api.GET("/quote", s.quote)

		private := api.Group("")
		private.Use(requireAPIUser())
		{
			private.GET("/me", s.me)
			private.GET("/entries/today", s.todayEntries)
			private.GET("/entries", s.history)
			private.GET("/entries/search", s.search)
			private.GET("/entries/:id", s.getEntry)
			private.PUT("/entries/:id", s.updateEntry)
			private.POST("/entries", s.submitEntry)
			private.GET("/streak", s.streak)
			private.GET("/dashboard", s.dashboard)
			private.GET("/calendar", s.calendar)
		}
	}

	r.GET("/", s.homePage)
	r.GET("/login", s.authPage("login"))
	r.GET("/register", s.authPage("register"))
	r.GET("/reset-password", s.authPage("reset-password"))
	r.GET("/resources", s.resourcesPage)

	protected := r.Group("")
	protected.Use(requirePageUser())
	{
		protected.GET("/calendar", s.calendarPage)
		protected.GET("/dashboard", s.dashboardPage)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "code": "NOT_FOUND"})
	})
	return r
}
