// Package schedule provides timed warm triggers for the prewarm daemon.
// It implements a single-goroutine scheduler using a min-heap of WarmEvents
// sorted by trigger time, with a 60-second max-sleep-cap to handle NTP
// steps, DST transitions, and system sleep.
//
// The scheduler is a daemon-level component: when an event fires it calls
// a registered OnTrigger callback, which feeds the warming trigger gate.
// The gate still applies its own cooldown and in-flight rules, so a
// scheduled fire during an active warm cycle is simply dropped. Events are
// declared in the daemon configuration or added over RPC; the heap is
// rebuilt from configuration on daemon restart.
package schedule
