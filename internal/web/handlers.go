package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack/tasktrack/internal/report"
	"github.com/tasktrack/tasktrack/internal/tasks"
)

func (s *Server) handleTasks(c *gin.Context) {
	user := c.Query("user")
	completedOnly := c.Query("completed") == "true"

	seq, err := s.tasks.All(c.Request.Context())
	if err != nil && !errors.Is(err, tasks.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	today := s.tasks.Today()
	records := []tasks.Record{}
	if seq != nil {
		for t := range seq {
			if user != "" && t.AssignedUser != user {
				continue
			}
			if completedOnly && !t.Completed {
				continue
			}
			records = append(records, t.ToRecord(today))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   records,
		"count":   len(records),
	})
}

func (s *Server) handleTask(c *gin.Context) {
	id := c.Param("id")

	t, err := s.tasks.Get(c.Request.Context(), id)
	if errors.Is(err, tasks.ErrTaskNotFound) || errors.Is(err, tasks.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "task not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    t.ToRecord(s.tasks.Today()),
	})
}

type userRecord struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

func (s *Server) handleUsers(c *gin.Context) {
	if !s.reloadUsers(c) {
		return
	}

	names := s.users.Usernames()
	users := make([]userRecord, 0, len(names))
	for _, name := range names {
		users = append(users, userRecord{Username: name, Admin: name == s.adminUser})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

// reloadUsers refreshes the user list and writes an error response on failure
func (s *Server) reloadUsers(c *gin.Context) bool {
	if err := s.users.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return false
	}
	return true
}

func (s *Server) handleStats(c *gin.Context) {
	// Stats read usernames from the same store
	if !s.reloadUsers(c) {
		return
	}

	stats, err := s.stats.Stats(c.Request.Context())
	if errors.Is(err, report.ErrTasksNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"data":              stats,
		"incompletePercent": stats.IncompletePercent(),
		"overduePercent":    stats.OverduePercent(),
	})
}
