package server

import (
	"context"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/prewarm/prewarm/common"
	"github.com/prewarm/prewarm/internal/schedule"
	"github.com/prewarm/prewarm/pkg/warmlib"
)

// Custom JSON-RPC error codes for warming operations.
const (
	codeInvalidCron   = jrpc2.Code(-32001)
	codeNoSuchEntry   = jrpc2.Code(-32002)
	codeInvalidParams = jrpc2.Code(-32602)
)

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret    string // Auth token (required -- empty means RPC disabled)
	Version   string // Daemon version
	Commit    string // Git commit
	BuildType string // Build type
}

// RPCServer manages the JSON-RPC 2.0 bridge and method handlers for the
// warming daemon.
type RPCServer struct {
	bridge    jhttp.Bridge
	secret    string
	version   string
	commit    string
	buildType string
	warmer    *warmlib.WarmingScheduler
	sched     *schedule.Scheduler
}

// NewRPCServer creates a new RPCServer with method handlers and HTTP bridge.
func NewRPCServer(cfg *RPCConfig, w *warmlib.WarmingScheduler, sched *schedule.Scheduler) *RPCServer {
	rs := &RPCServer{
		secret:    cfg.Secret,
		version:   cfg.Version,
		commit:    cfg.Commit,
		buildType: cfg.BuildType,
		warmer:    w,
		sched:     sched,
	}

	methods := handler.Map{
		common.MethodGetVersion:       handler.New(rs.systemGetVersion),
		common.MethodWarmingTrigger:   handler.New(rs.warmingTrigger),
		common.MethodWarmingStatus:    handler.New(rs.warmingStatus),
		common.MethodWarmingFreeze:    handler.New(rs.warmingFreeze),
		common.MethodWarmingReset:     handler.New(rs.warmingReset),
		common.MethodWarmingConfigure: handler.New(rs.warmingConfigure),
		common.MethodScheduleAdd:      handler.New(rs.scheduleAdd),
		common.MethodScheduleRemove:   handler.New(rs.scheduleRemove),
		common.MethodScheduleList:     handler.New(rs.scheduleList),
	}

	rs.bridge = jhttp.NewBridge(methods, nil)
	return rs
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*common.VersionResult, error) {
	return &common.VersionResult{
		Version:   rs.version,
		Commit:    rs.commit,
		BuildType: rs.buildType,
	}, nil
}

// warmingTrigger feeds the trigger gate and returns the resulting state.
// A dropped or queued trigger is not an error; the status tells the caller
// what happened.
func (rs *RPCServer) warmingTrigger(_ context.Context) (*common.StatusResult, error) {
	rs.warmer.Trigger()
	return makeStatusResult(rs.warmer.Status()), nil
}

func (rs *RPCServer) warmingStatus(_ context.Context) (*common.StatusResult, error) {
	return makeStatusResult(rs.warmer.Status()), nil
}

func (rs *RPCServer) warmingFreeze(_ context.Context) (*common.EmptyResult, error) {
	rs.warmer.Freeze()
	return &common.EmptyResult{}, nil
}

func (rs *RPCServer) warmingReset(_ context.Context) (*common.EmptyResult, error) {
	rs.warmer.Reset()
	return &common.EmptyResult{}, nil
}

func (rs *RPCServer) warmingConfigure(_ context.Context, p *common.ConfigureParams) (*common.ConfigResult, error) {
	u := &warmlib.ConfigUpdate{}
	if p.CooldownSeconds != nil {
		if *p.CooldownSeconds <= 0 {
			return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "cooldownSeconds must be positive"}
		}
		d := time.Duration(*p.CooldownSeconds) * time.Second
		u.CooldownPeriod = &d
	}
	if p.PollIntervalSeconds != nil {
		if *p.PollIntervalSeconds <= 0 {
			return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "pollIntervalSeconds must be positive"}
		}
		d := time.Duration(*p.PollIntervalSeconds) * time.Second
		u.PollInterval = &d
	}
	if p.Target != nil {
		u.Target = p.Target
	}
	rs.warmer.UpdateConfig(u)

	cfg := rs.warmer.Config()
	return &common.ConfigResult{
		CooldownSeconds:     int(cfg.CooldownPeriod / time.Second),
		PollIntervalSeconds: int(cfg.PollInterval / time.Second),
		Target:              cfg.Target,
	}, nil
}

// scheduleAdd arms a warm trigger: recurring from a cron expression, or
// one-shot from an absolute RFC 3339 time.
func (rs *RPCServer) scheduleAdd(_ context.Context, p *common.ScheduleAddParams) (*common.EmptyResult, error) {
	if p.Name == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: name"}
	}
	if (p.Cron == "") == (p.At == "") {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "exactly one of cron or at must be set"}
	}
	if p.At != "" {
		at, err := time.Parse(time.RFC3339, p.At)
		if err != nil {
			return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "invalid at time: " + err.Error()}
		}
		if !at.After(time.Now()) {
			return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "at time is in the past: " + p.At}
		}
		rs.sched.Add(schedule.WarmEvent{
			Name:      p.Name,
			TriggerAt: at,
		})
		return &common.EmptyResult{}, nil
	}
	if !schedule.Valid(p.Cron) {
		return nil, &jrpc2.Error{Code: codeInvalidCron, Message: "invalid cron expression: " + p.Cron}
	}
	next, err := schedule.NextOccurrence(p.Cron, time.Now())
	if err != nil {
		return nil, &jrpc2.Error{Code: codeInvalidCron, Message: err.Error()}
	}
	rs.sched.Add(schedule.WarmEvent{
		Name:      p.Name,
		TriggerAt: next,
		CronExpr:  p.Cron,
	})
	return &common.EmptyResult{}, nil
}

func (rs *RPCServer) scheduleRemove(_ context.Context, p *common.ScheduleNameParam) (*common.EmptyResult, error) {
	if p.Name == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: name"}
	}
	if !rs.sched.Remove(p.Name) {
		return nil, &jrpc2.Error{Code: codeNoSuchEntry, Message: "schedule not found: " + p.Name}
	}
	return &common.EmptyResult{}, nil
}

func (rs *RPCServer) scheduleList(_ context.Context) (*common.ScheduleListResult, error) {
	events := rs.sched.List()
	entries := make([]*common.ScheduleEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, &common.ScheduleEntry{
			Name:      e.Name,
			Cron:      e.CronExpr,
			TriggerAt: e.TriggerAt.Format(time.RFC3339),
		})
	}
	return &common.ScheduleListResult{Schedules: entries}, nil
}

func makeStatusResult(st warmlib.Status) *common.StatusResult {
	r := &common.StatusResult{
		InProgress:         st.InProgress,
		SinceLastAttemptMs: st.SinceLastAttempt.Milliseconds(),
		SinceLastSuccessMs: st.SinceLastSuccess.Milliseconds(),
		CanWarm:            st.CanWarm,
	}
	if !st.LastWarmAttemptAt.IsZero() {
		r.LastWarmAttemptAt = st.LastWarmAttemptAt.Format(time.RFC3339)
	}
	if !st.LastSuccessfulWarmAt.IsZero() {
		r.LastSuccessfulWarmAt = st.LastSuccessfulWarmAt.Format(time.RFC3339)
	}
	return r
}

// Close shuts down the jrpc2 bridge, releasing internal goroutines.
func (rs *RPCServer) Close() {
	rs.bridge.Close()
}
