package schedule

import "time"

// WarmEvent represents a pending timed warm trigger in the scheduler heap.
// It is an in-memory only type; the heap is rebuilt from the daemon
// configuration on restart.
type WarmEvent struct {
	// Name identifies the schedule; removals are keyed on it.
	Name string
	// TriggerAt is the wall-clock time when the warm trigger should fire.
	TriggerAt time.Time
	// CronExpr is the cron expression for recurring warm triggers.
	// Empty string means one-shot — no re-arming after firing.
	CronExpr string
}
