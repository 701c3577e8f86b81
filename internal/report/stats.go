package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/tasktrack/tasktrack/internal/tasks"
)

// UserStats holds the per-user breakdown
type UserStats struct {
	Username  string `json:"username"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Overdue   int    `json:"overdue"`
}

// CompletedPercent is the share of the user's tasks that are completed
func (u UserStats) CompletedPercent() float64 {
	return percent(u.Completed, u.Total)
}

// OverduePercent is the share of the user's tasks that are overdue
func (u UserStats) OverduePercent() float64 {
	return percent(u.Overdue, u.Total)
}

// Stats holds the aggregate counts of a task store
type Stats struct {
	Total       int         `json:"total"`
	Completed   int         `json:"completed"`
	Uncompleted int         `json:"uncompleted"`
	Overdue     int         `json:"overdue"`
	Registered  int         `json:"registeredUsers"`
	Users       []UserStats `json:"users"`
}

// IncompletePercent is the share of all tasks that are not completed
func (s *Stats) IncompletePercent() float64 {
	return percent(s.Uncompleted, s.Total)
}

// OverduePercent is the share of all tasks that are overdue
func (s *Stats) OverduePercent() float64 {
	return percent(s.Overdue, s.Total)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// Compute aggregates tasks in a single pass. Users appear in the given order;
// assignees missing from users are appended in first-seen order but do not
// count as registered.
func Compute(all []tasks.Task, users []string, today time.Time) *Stats {
	s := &Stats{Users: make([]UserStats, 0, len(users))}
	index := make(map[string]int, len(users))
	for _, u := range users {
		if _, ok := index[u]; ok {
			continue
		}
		index[u] = len(s.Users)
		s.Users = append(s.Users, UserStats{Username: u})
	}
	s.Registered = len(s.Users)

	for _, t := range all {
		i, ok := index[t.AssignedUser]
		if !ok {
			i = len(s.Users)
			index[t.AssignedUser] = i
			s.Users = append(s.Users, UserStats{Username: t.AssignedUser})
		}
		u := &s.Users[i]

		s.Total++
		u.Total++
		if t.Completed {
			s.Completed++
			u.Completed++
			continue
		}
		s.Uncompleted++
		if t.Overdue(today) {
			s.Overdue++
			u.Overdue++
		}
	}
	return s
}

// RenderTaskOverview renders the task overview document
func (s *Stats) RenderTaskOverview() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total tasks: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("Completed: %d\n", s.Completed))
	sb.WriteString(fmt.Sprintf("Uncompleted: %d\n", s.Uncompleted))
	sb.WriteString(fmt.Sprintf("Overdue: %d\n", s.Overdue))
	sb.WriteString(fmt.Sprintf("Incomplete %%: %.2f%%\n", s.IncompletePercent()))
	sb.WriteString(fmt.Sprintf("Overdue %%: %.2f%%\n", s.OverduePercent()))
	return sb.String()
}

// RenderUserOverview renders the per-user overview document
func (s *Stats) RenderUserOverview() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total users: %d\n", s.Registered))
	sb.WriteString(fmt.Sprintf("Total tasks: %d\n", s.Total))
	for _, u := range s.Users {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("User: %s\n", u.Username))
		sb.WriteString(fmt.Sprintf("Tasks: %d\n", u.Total))
		sb.WriteString(fmt.Sprintf("Completed: %.2f%%\n", u.CompletedPercent()))
		sb.WriteString(fmt.Sprintf("Overdue: %.2f%%\n", u.OverduePercent()))
	}
	return sb.String()
}
