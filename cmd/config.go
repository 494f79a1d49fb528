package cmd

const DESCRIPTION = `
Prewarm keeps a remote inference endpoint hot. It debounces warm
triggers, respects a cooldown between successful warm calls, and
polls each warm prediction until it reaches a terminal state, so
the first real request after an idle period does not pay the
cold-start penalty.
`

const HELP_TEMPL = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}
{{.Description}}{{if .VisibleCommands}}
Commands:{{range .VisibleCategories}}{{if .Name}}

{{.Name}}:{{range .VisibleCommands}}
  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
{{"\t"}}{{index .Names 0}}{{"\t:\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{end}}{{if .VisibleFlags}}{{end}}

Use "{{.HelpName}} help <command>" for more information about any command.

`

const CMD_HELP_TEMPL = `{{if .Description}}{{.Description}}{{else}}{{.HelpName}} - {{.Usage}}

{{end}}Usage:
        {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[arguments...]{{end}}{{if .VisibleFlags}}

Supported Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

`

const (
	DaemonDescription = `The daemon command starts the warming daemon in the
foreground. The daemon exposes a JSON-RPC control surface, arms the
configured warm schedules, and pushes warming events to connected
listeners.

Example:
        prewarm daemon

`
	WarmDescription = `The warm command performs a single warm call in the
foreground without going through the daemon. It creates a warm
prediction against the configured inference endpoint and waits
until the prediction reaches a terminal state.

Example:
        prewarm warm

`
	TriggerDescription = `The trigger command feeds the daemon's warm trigger
gate. The daemon decides what happens: the trigger is dropped while
a warm cycle is in progress, starts a cycle immediately once the
cooldown has elapsed, or is queued for the instant it does.

Example:
        prewarm trigger

`
	StatusDescription = `The status command shows the daemon's warming state:
whether a cycle is in progress, when the last attempt and the last
success happened, and whether a new warm call would be permitted
right now.

Example:
        prewarm status

`
	FreezeDescription = `The freeze command suppresses all warming activity
until "prewarm reset" is called. Use it while a real inference
request is in flight so warming never competes with real traffic.

Example:
        prewarm freeze

`
	ResetDescription = `The reset command lifts a freeze and restarts the
cooldown window from now, as if a warm call had just succeeded.

Example:
        prewarm reset

`
	ConfigureDescription = `The configure command updates the daemon's warming
parameters at runtime. Omitted flags keep their current value; the
update takes effect on the next trigger or warm cycle.

Example:
        prewarm configure --cooldown 30

`
	ScheduleDescription = `The schedule command manages timed warm triggers:
recurring ones driven by cron expressions, or one-shot ones that fire
once at an absolute time. Scheduled triggers go through the same
gate as manual ones, so cooldown and in-progress rules still apply.

Example:
        prewarm schedule add --name weekday-morning --cron "0 9 * * 1-5"
        prewarm schedule add --name demo --at 2026-09-01T08:55:00Z
        prewarm schedule list
        prewarm schedule remove --name weekday-morning

`
	TokenDescription = `The token command stores or removes the inference API
token in the system keyring. The daemon and the warm command read
the token from the keyring when talking to the inference endpoint.

Example:
        prewarm token set <api-token>
        prewarm token delete

`
	EventsDescription = `The events command subscribes to the daemon's warming
event stream and prints each event as it arrives. Useful for
watching warm cycles from a second terminal.

Example:
        prewarm events

`
)
