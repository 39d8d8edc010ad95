// Package server exposes learning sessions over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/logger"
)

// Config holds HTTP server settings.
type Config struct {
	Addr         string
	AllowOrigins []string
	Rules        badges.Rules
}

// Server wires the HTTP routes to a session store and the teaching team.
type Server struct {
	cfg    Config
	team   *agents.Team
	store  Store
	log    *logger.Logger
	engine *gin.Engine
}

// New builds the server and its routes.
func New(cfg Config, team *agents.Team, store Store, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Rules.PointsPerLevel == 0 {
		cfg.Rules = badges.DefaultRules()
	}
	s := &Server{
		cfg:   cfg,
		team:  team,
		store: store,
		log:   log.With("service", "http"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.log))
	r.Use(corsMiddleware(s.cfg.AllowOrigins))
	r.MaxMultipartMemory = 12 << 20

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	{
		api.GET("/agents", s.listAgents)

		api.POST("/sessions", s.createSession)
		api.GET("/sessions/:id", s.getSession)
		api.DELETE("/sessions/:id", s.deleteSession)
		api.PUT("/sessions/:id/profile", s.updateProfile)
		api.POST("/sessions/:id/generate", s.generate)
		api.POST("/sessions/:id/quiz", s.submitQuiz)
		api.POST("/sessions/:id/quiz/question", s.quizQuestion)
		api.POST("/sessions/:id/notes", s.shareNote)
		api.POST("/sessions/:id/reviews", s.submitReview)
		api.POST("/sessions/:id/assignments", s.submitAssignment)
		api.POST("/sessions/:id/chat", s.sendChat)
		api.DELETE("/sessions/:id/chat", s.clearChat)
		api.PUT("/sessions/:id/progress", s.adjustProgress)
		api.POST("/sessions/:id/ask", s.ask)
		api.GET("/sessions/:id/reminder", s.reminder)
		api.GET("/sessions/:id/export", s.export)
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	})
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, "session_id", id)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
