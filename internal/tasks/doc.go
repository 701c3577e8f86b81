// Package tasks implements the task store and the operations on it.
//
// # Stores
//
// Two Store implementations exist:
//
//   - TextStore: the task file with one ", "-delimited record per line:
//
//     bob, Write report, Q1 summary, 12 May 2025, 02 Jan 2025, No
//
//     Fields are assigned user, title, description, due date, created date and
//     the completion flag (Yes/No, read case-insensitively). The format has no
//     escaping, so values containing ", " or a line break are rejected on write.
//     Rewrites go through a temp file that is renamed over the original.
//
//   - SQLiteStore: the same records in a SQLite table, for installations that
//     do not need the text format.
//
// # Identity
//
// Each task carries an ID. Text store IDs are derived from the record line
// and its occurrence among identical lines, so they survive rewrites of other
// records; SQLite IDs are random UUIDs. Operations that change a task take
// its ID, and fail with ErrTaskNotFound if the record changed since it was
// listed.
//
// # Lifecycle
//
//	Pending --edit--> Pending
//	Pending --complete--> Completed
//	Pending|Completed --delete--> (removed)
//
// Completion is one-way; there is no operation that reopens a task.
//
// # Usage
//
//	svc := tasks.NewService(tasks.NewTextStore("task.txt"),
//		tasks.WithMutationHook(generator.Invalidate))
//
//	t, err := svc.Add(ctx, tasks.Draft{AssignedUser: "bob", Title: "Write report",
//		Description: "Q1 summary", DueDate: "12 May 2025"})
//
//	_, err = svc.MarkComplete(ctx, t.ID)
package tasks
