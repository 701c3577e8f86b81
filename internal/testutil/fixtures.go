package testutil

// SampleUsers is a credential file with an admin and one regular user.
const SampleUsers = "admin, admin123\nbob, secret\n"

// SampleTasks is a task file with three tasks for admin and bob: two
// completed and one pending task due 12 May 2025.
const SampleTasks = "admin, Plan, Quarter plan, 01 Jun 2025, 01 May 2025, Yes\n" +
	"bob, Review, Code review, 10 May 2025, 01 May 2025, Yes\n" +
	"bob, Write report, Q1 summary, 12 May 2025, 01 May 2025, No\n"

// LegacyTasks is a task file in the format older versions wrote: a leading
// blank line and no trailing newline.
const LegacyTasks = "\nadmin, Plan, Quarter plan, 01 Jun 2025, 01 May 2025, yes"
