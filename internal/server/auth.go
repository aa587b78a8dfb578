package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoweb/internal/auth"
	"todoweb/internal/models"
	"todoweb/internal/storage"
	"todoweb/internal/validation"
)

// loginFailedMessage is shared by every login failure so the response never
// reveals whether the username exists. Logs keep the distinction.
const loginFailedMessage = "Invalid username or password"

const genericErrorMessage = "An error occurred. Please try again."

// handleLoginPage renders the login form.
func (s *Server) handleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// handleLogin verifies credentials and issues a session.
func (s *Server) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if res := validation.ValidateLogin(username, password); !res.OK() {
		s.logger.Warn("login attempt with missing credentials")
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": res.Message()})
		return
	}

	user, err := s.users.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.Warn("login attempt with invalid username", slog.String("username", username))
			c.HTML(http.StatusOK, "login.html", gin.H{"Error": loginFailedMessage})
			return
		}
		s.logger.Error("login user lookup failed", slog.String("error", err.Error()))
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": genericErrorMessage})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Warn("login attempt with invalid password", slog.String("username", username))
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": loginFailedMessage})
		return
	}

	if !s.issueSession(c, user) {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": genericErrorMessage})
		return
	}

	s.logger.Info("user logged in",
		slog.String("user_id", user.ID), slog.String("username", user.Username))
	c.Redirect(http.StatusFound, "/todos")
}

// handleSignupPage renders the signup form.
func (s *Server) handleSignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// handleSignup creates an account and logs the new user straight in.
func (s *Server) handleSignup(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	if res := validation.ValidateSignup(username, password, confirm); !res.OK() {
		s.logger.Warn("signup attempt with invalid input", slog.String("field", res.Errors[0].Field))
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": res.Message()})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("password hashing failed", slog.String("error", err.Error()))
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": genericErrorMessage})
		return
	}

	user, err := s.users.CreateUser(c.Request.Context(), username, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			s.logger.Warn("signup attempt with existing username", slog.String("username", username))
			c.HTML(http.StatusOK, "signup.html", gin.H{"Error": "Username already exists"})
			return
		}
		s.logger.Error("signup failed", slog.String("error", err.Error()))
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": genericErrorMessage})
		return
	}

	if !s.issueSession(c, user) {
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": genericErrorMessage})
		return
	}

	s.logger.Info("user signed up",
		slog.String("user_id", user.ID), slog.String("username", user.Username))
	c.Redirect(http.StatusFound, "/todos")
}

// handleLogout destroys the session and redirects to login whatever the
// destroy outcome. Failures are logged, never surfaced.
func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		if err := s.sessions.Delete(token); err != nil {
			s.logger.Error("logout failed", slog.String("error", err.Error()))
		} else {
			s.logger.Info("user logged out")
		}
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/auth/login")
}

// issueSession creates a session record and sets the HttpOnly cookie.
func (s *Server) issueSession(c *gin.Context, user models.User) bool {
	token, err := s.sessions.Create(user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to create session",
			slog.String("user_id", user.ID), slog.String("error", err.Error()))
		return false
	}
	c.SetCookie(sessionCookie, token, int(storage.SessionTTL.Seconds()), "/", "", false, true)
	return true
}
