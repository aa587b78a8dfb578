package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoweb/internal/models"
	"todoweb/internal/storage"
)

const sessionCookie = "todo_session"

// Keys under which the authenticated identity is stashed in the gin context.
const (
	ctxUserID   = "userID"
	ctxUsername = "username"
)

// currentSession resolves the request's cookie to a live session, if any.
func (s *Server) currentSession(c *gin.Context) (models.Session, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return models.Session{}, false
	}

	sess, err := s.sessions.Get(token)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			s.logger.Error("session lookup failed", slog.String("error", err.Error()))
		}
		return models.Session{}, false
	}
	return sess, true
}

// requireAuth gates a route on a valid session. Denial is a redirect to the
// login page, not a hard error.
func (s *Server) requireAuth(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		s.logger.Warn("unauthorized access attempt", slog.String("path", c.Request.URL.Path))
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
		return
	}

	c.Set(ctxUserID, sess.UserID)
	c.Set(ctxUsername, sess.Username)
	c.Next()
}

// redirectIfAuthed keeps logged-in users off the login and signup pages.
func (s *Server) redirectIfAuthed(c *gin.Context) {
	if _, ok := s.currentSession(c); ok {
		c.Redirect(http.StatusFound, "/todos")
		c.Abort()
		return
	}
	c.Next()
}
