package server

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"todoweb/internal/models"
	"todoweb/internal/storage"
	"todoweb/internal/validation"
)

type statusRequest struct {
	Status string `json:"status" form:"status"`
}

// handleListTodos renders the task list for the session's user.
func (s *Server) handleListTodos(c *gin.Context) {
	filter := models.ParseTaskFilter(c.Query("filter"))
	userID := c.GetString(ctxUserID)

	tasks, err := s.tasks.ListTasks(c.Request.Context(), userID, filter)
	if err != nil {
		s.logger.Error("failed to list todos",
			slog.String("user_id", userID), slog.String("error", err.Error()))
		s.renderFailure(c, http.StatusInternalServerError, "Error loading todos")
		return
	}

	s.logger.Info("todos fetched",
		slog.String("user_id", userID),
		slog.String("filter", string(filter)),
		slog.Int("count", len(tasks)))

	c.HTML(http.StatusOK, "todos.html", gin.H{
		"Todos":    tasks,
		"Filter":   string(filter),
		"Username": c.GetString(ctxUsername),
		"Error":    c.Query("error"),
	})
}

// handleCreateTodo creates a task from the submitted form. Validation
// failures land back on the list with an error indicator, not on a
// separate page.
func (s *Server) handleCreateTodo(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	userID := c.GetString(ctxUserID)

	if res := validation.ValidateTask(title); !res.OK() {
		s.logger.Warn("create todo attempt with empty title", slog.String("user_id", userID))
		c.Redirect(http.StatusFound, "/todos?error="+url.QueryEscape(res.Message()))
		return
	}

	task, err := s.tasks.CreateTask(c.Request.Context(), userID, title, description)
	if err != nil {
		s.logger.Error("failed to create todo",
			slog.String("user_id", userID), slog.String("error", err.Error()))
		c.Redirect(http.StatusFound, "/todos?error="+url.QueryEscape("Error creating todo"))
		return
	}

	s.logger.Info("todo created",
		slog.String("todo_id", task.ID), slog.String("user_id", userID))
	c.Redirect(http.StatusFound, "/todos")
}

// handleUpdateStatus moves a task to the requested status. The endpoint is
// called asynchronously from the list page, so the response is data.
func (s *Server) handleUpdateStatus(c *gin.Context) {
	var req statusRequest
	_ = c.ShouldBind(&req)

	status := models.TaskStatus(req.Status)
	if _, ok := models.ValidTaskStatuses[status]; !ok {
		s.logger.Warn("invalid status update attempt", slog.String("status", req.Status))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}

	s.applyStatus(c, status, "Error updating todo")
}

// handleDeleteTodo soft-deletes a task. Repeating the call succeeds again.
func (s *Server) handleDeleteTodo(c *gin.Context) {
	taskID := c.Param("id")
	userID := c.GetString(ctxUserID)

	if err := s.tasks.SoftDeleteTask(c.Request.Context(), taskID, userID); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			s.logger.Warn("delete attempt on non-existent todo", slog.String("todo_id", taskID))
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Todo not found"})
			return
		}
		s.logger.Error("failed to delete todo",
			slog.String("todo_id", taskID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting todo"})
		return
	}

	s.logger.Info("todo deleted", slog.String("todo_id", taskID))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleRestoreTodo brings a soft-deleted task back to pending.
func (s *Server) handleRestoreTodo(c *gin.Context) {
	s.applyStatus(c, models.StatusPending, "Error restoring todo")
}

// applyStatus performs the owner-scoped status change and answers with the
// structured success/failure shape.
func (s *Server) applyStatus(c *gin.Context, status models.TaskStatus, failureMessage string) {
	taskID := c.Param("id")
	userID := c.GetString(ctxUserID)

	if _, err := s.tasks.SetTaskStatus(c.Request.Context(), taskID, userID, status); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			s.logger.Warn("todo not found or unauthorized", slog.String("todo_id", taskID))
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Todo not found"})
			return
		}
		s.logger.Error("failed to update todo status",
			slog.String("todo_id", taskID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": failureMessage})
		return
	}

	s.logger.Info("todo status updated",
		slog.String("todo_id", taskID), slog.String("status", string(status)))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
