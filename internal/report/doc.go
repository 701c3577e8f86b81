// Package report aggregates task statistics into two summary documents.
//
// The task overview holds the global counts:
//
//	Total tasks: 3
//	Completed: 2
//	Uncompleted: 1
//	Overdue: 1
//	Incomplete %: 33.33%
//	Overdue %: 33.33%
//
// The user overview holds the per-user breakdown, with percentages computed
// against each user's own total:
//
//	Total users: 2
//	Total tasks: 3
//
//	User: admin
//	Tasks: 1
//	Completed: 100.00%
//	Overdue: 0.00%
//
// Percentages are 0 when the relevant total is 0.
//
// The documents are derived data. Generator.Invalidate removes them and is
// meant to be registered as a task mutation hook, so a displayed report always
// reflects the current stores.
package report
