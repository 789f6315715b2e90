package server

import (
	"net/http"
	"time"

	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the web front end: server-rendered pages plus a small JSON API,
// both driving the shared store layer.
type Server struct {
	db      *db.DB
	echo    *echo.Echo
	flashes *flashStore
}

// New creates a new server around an already-constructed store.
func New(database *db.DB) (*Server, error) {
	s := &Server{
		db:      database,
		flashes: newFlashStore(),
	}

	if err := s.setupEcho(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupEcho() error {
	e := echo.New()
	e.HideBanner = true

	r, err := newRenderer()
	if err != nil {
		return err
	}
	e.Renderer = r

	// Request/response logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Pages
	e.GET("/", s.handleIndex)
	e.GET("/health", s.handleHealth)

	// Form handlers
	e.POST("/projects/add", s.handleProjectAdd)
	e.POST("/projects/edit/:id", s.handleProjectEdit)
	e.POST("/projects/delete/:id", s.handleProjectDelete)
	e.POST("/tasks/add/:projectID", s.handleTaskAdd)
	e.POST("/tasks/edit/:id", s.handleTaskEdit)
	e.POST("/tasks/delete/:id", s.handleTaskDelete)
	e.POST("/tasks/:id/log-time", s.handleLogTime)

	// JSON API
	api := e.Group("/api")
	api.GET("/projects/:id/tasks", s.handleProjectTasksAPI)
	api.GET("/tasks/:id/logs", s.handleTaskLogsAPI)

	s.echo = e
	return nil
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.db.Connect(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
