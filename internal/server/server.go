// Package server provides the HTTP surface of the todo application:
// session-gated task routes, the auth flow and the rendered views.
package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todoweb/internal/storage"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server holds the injected stores and logger; nothing here is global.
type Server struct {
	engine   *gin.Engine
	users    storage.UserStore
	tasks    storage.TaskStore
	sessions storage.SessionStore
	logger   *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(users storage.UserStore, tasks storage.TaskStore, sessions storage.SessionStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	srv := &Server{
		engine:   router,
		users:    users,
		tasks:    tasks,
		sessions: sessions,
		logger:   logger,
	}

	router.Use(gin.CustomRecovery(srv.handlePanic))

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the auth and todo handlers together.
func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/healthz", s.handleHealth)

	auth := s.engine.Group("/auth")
	{
		auth.GET("/login", s.redirectIfAuthed, s.handleLoginPage)
		auth.POST("/login", s.handleLogin)
		auth.GET("/signup", s.redirectIfAuthed, s.handleSignupPage)
		auth.POST("/signup", s.handleSignup)
		auth.GET("/logout", s.handleLogout)
	}

	todos := s.engine.Group("/todos", s.requireAuth)
	{
		todos.GET("", s.handleListTodos)
		todos.POST("/create", s.handleCreateTodo)
		todos.POST("/:id/status", s.handleUpdateStatus)
		todos.POST("/:id/delete", s.handleDeleteTodo)
		todos.POST("/:id/restore", s.handleRestoreTodo)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		s.renderFailure(c, http.StatusNotFound, "Page not found")
	})
}

// handleRoot sends visitors to their task list or to the login page.
func (s *Server) handleRoot(c *gin.Context) {
	if _, ok := s.currentSession(c); ok {
		c.Redirect(http.StatusFound, "/todos")
		return
	}
	c.Redirect(http.StatusFound, "/auth/login")
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handlePanic is the single funnel for unhandled panics: log with detail,
// answer with a generic failure in whatever shape the client accepts.
func (s *Server) handlePanic(c *gin.Context, err any) {
	s.logger.Error("panic recovered",
		slog.Any("error", err),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path))
	s.renderFailure(c, http.StatusInternalServerError, "Something went wrong!")
}

// renderFailure answers with JSON or an error page depending on what the
// client accepts. Detail stays in the logs.
func (s *Server) renderFailure(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}
	c.HTML(status, "error.html", gin.H{"Message": message})
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
