// Package web serves a read-only JSON view of the task and user stores.
package web

import (
	"context"
	"iter"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack/tasktrack/internal/report"
	"github.com/tasktrack/tasktrack/internal/tasks"
)

// TaskReader is the read side of the task service
type TaskReader interface {
	All(ctx context.Context) (iter.Seq[tasks.Task], error)
	Get(ctx context.Context, id string) (tasks.Task, error)
	Today() time.Time
}

// UserLister lists registered usernames. Reload rereads the backing store
// so registrations made by other processes are visible.
type UserLister interface {
	Reload() error
	Usernames() []string
}

// StatsSource computes report statistics on demand
type StatsSource interface {
	Stats(ctx context.Context) (*report.Stats, error)
}

// Server is the tasktrack HTTP API
type Server struct {
	tasks     TaskReader
	users     UserLister
	stats     StatsSource
	adminUser string
	router    *gin.Engine
}

// NewServer creates a new web server
func NewServer(taskReader TaskReader, users UserLister, stats StatsSource, adminUser string) *Server {
	router := gin.Default()

	s := &Server{
		tasks:     taskReader,
		users:     users,
		stats:     stats,
		adminUser: adminUser,
		router:    router,
	}

	// API routes
	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleTasks)
		api.GET("/tasks/:id", s.handleTask)
		api.GET("/users", s.handleUsers)
		api.GET("/stats", s.handleStats)
	}

	return s
}

// Handler returns the router for use with httptest or a custom http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
