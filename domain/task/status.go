package task

import "time"

// DeriveStatus recomputes a task's lifecycle status from its deadline and
// the current date. It runs on every write and never trusts a previously
// stored status.
//
// Without a deadline the declared status is kept as-is. With a deadline,
// COMPLETED turns into LATE once the deadline has passed; any other
// declared status becomes OVERDUE past the deadline and ACTIVE otherwise.
// OVERDUE and LATE are therefore output-only: a caller declaring them with
// a future deadline gets ACTIVE back.
func DeriveStatus(declared Status, deadline *time.Time, today time.Time) Status {
	if deadline == nil {
		return declared
	}

	due := DateOf(*deadline)
	now := DateOf(today)

	if declared == StatusCompleted {
		if due.Before(now) {
			return StatusLate
		}
		return StatusCompleted
	}
	if due.Before(now) {
		return StatusOverdue
	}
	return StatusActive
}
