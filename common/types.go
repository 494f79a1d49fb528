// Package common holds the wire types shared by the prewarm daemon's
// JSON-RPC control surface and the client library that talks to it.
package common

// JSON-RPC method names exposed by the daemon.
const (
	MethodGetVersion       = "system.getVersion"
	MethodWarmingTrigger   = "warming.trigger"
	MethodWarmingStatus    = "warming.status"
	MethodWarmingFreeze    = "warming.freeze"
	MethodWarmingReset     = "warming.reset"
	MethodWarmingConfigure = "warming.configure"
	MethodScheduleAdd      = "schedule.add"
	MethodScheduleRemove   = "schedule.remove"
	MethodScheduleList     = "schedule.list"
)

// Notification method names pushed over the event stream.
const (
	NotifyWarmingStarted   = "warming.started"
	NotifyWarmingCompleted = "warming.completed"
	NotifyWarmingFailed    = "warming.failed"
)

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"buildType,omitempty"`
}

// StatusResult is the response for warming.status and warming.trigger.
// Durations are reported in milliseconds; timestamps are RFC 3339 and
// omitted while still zero.
type StatusResult struct {
	InProgress           bool   `json:"inProgress"`
	LastWarmAttemptAt    string `json:"lastWarmAttemptAt,omitempty"`
	LastSuccessfulWarmAt string `json:"lastSuccessfulWarmAt,omitempty"`
	SinceLastAttemptMs   int64  `json:"sinceLastAttemptMs"`
	SinceLastSuccessMs   int64  `json:"sinceLastSuccessMs"`
	CanWarm              bool   `json:"canWarm"`
}

// ConfigureParams is the input for warming.configure. Nil fields keep
// their current value.
type ConfigureParams struct {
	CooldownSeconds     *int    `json:"cooldownSeconds,omitempty"`
	PollIntervalSeconds *int    `json:"pollIntervalSeconds,omitempty"`
	Target              *string `json:"target,omitempty"`
}

// ConfigResult is the response for warming.configure.
type ConfigResult struct {
	CooldownSeconds     int    `json:"cooldownSeconds"`
	PollIntervalSeconds int    `json:"pollIntervalSeconds"`
	Target              string `json:"target"`
}

// ScheduleAddParams is the input for schedule.add. Exactly one of Cron
// (recurring) or At (one-shot, RFC 3339) must be set.
type ScheduleAddParams struct {
	Name string `json:"name"`
	Cron string `json:"cron,omitempty"`
	At   string `json:"at,omitempty"`
}

// ScheduleNameParam is the input for schedule.remove.
type ScheduleNameParam struct {
	Name string `json:"name"`
}

// ScheduleEntry is a single entry in the schedule.list response.
type ScheduleEntry struct {
	Name      string `json:"name"`
	Cron      string `json:"cron,omitempty"`
	TriggerAt string `json:"triggerAt"`
}

// ScheduleListResult is the response for schedule.list.
type ScheduleListResult struct {
	Schedules []*ScheduleEntry `json:"schedules"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}

// WarmingStartedNotification is sent when a warm cycle begins.
type WarmingStartedNotification struct {
	StartedAt string `json:"startedAt"`
}

// WarmingCompletedNotification is sent when a warm cycle succeeds.
type WarmingCompletedNotification struct {
	CompletedAt string `json:"completedAt"`
}

// WarmingFailedNotification is sent when a warm cycle ends with an error.
type WarmingFailedNotification struct {
	Error string `json:"error"`
}
