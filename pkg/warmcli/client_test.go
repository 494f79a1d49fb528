package warmcli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/prewarm/prewarm/common"
)

const testSecret = "s3cret"

// newFakeDaemon serves a minimal warming RPC surface behind bearer auth.
func newFakeDaemon(t *testing.T) *httptest.Server {
	t.Helper()
	schedules := map[string]common.ScheduleAddParams{}

	methods := handler.Map{
		common.MethodGetVersion: handler.New(func(context.Context) (*common.VersionResult, error) {
			return &common.VersionResult{Version: "v0.9.0", Commit: "deadbeef"}, nil
		}),
		common.MethodWarmingTrigger: handler.New(func(context.Context) (*common.StatusResult, error) {
			return &common.StatusResult{InProgress: true}, nil
		}),
		common.MethodWarmingStatus: handler.New(func(context.Context) (*common.StatusResult, error) {
			return &common.StatusResult{CanWarm: true}, nil
		}),
		common.MethodWarmingFreeze: handler.New(func(context.Context) (*common.EmptyResult, error) {
			return &common.EmptyResult{}, nil
		}),
		common.MethodWarmingReset: handler.New(func(context.Context) (*common.EmptyResult, error) {
			return &common.EmptyResult{}, nil
		}),
		common.MethodWarmingConfigure: handler.New(func(_ context.Context, p *common.ConfigureParams) (*common.ConfigResult, error) {
			res := &common.ConfigResult{CooldownSeconds: 10, PollIntervalSeconds: 2, Target: "animations/idle-loop-small.mp4"}
			if p.CooldownSeconds != nil {
				res.CooldownSeconds = *p.CooldownSeconds
			}
			return res, nil
		}),
		common.MethodScheduleAdd: handler.New(func(_ context.Context, p *common.ScheduleAddParams) (*common.EmptyResult, error) {
			schedules[p.Name] = *p
			return &common.EmptyResult{}, nil
		}),
		common.MethodScheduleRemove: handler.New(func(_ context.Context, p *common.ScheduleNameParam) (*common.EmptyResult, error) {
			if _, ok := schedules[p.Name]; !ok {
				return nil, &jrpc2.Error{Code: jrpc2.Code(-32002), Message: "schedule not found: " + p.Name}
			}
			delete(schedules, p.Name)
			return &common.EmptyResult{}, nil
		}),
		common.MethodScheduleList: handler.New(func(context.Context) (*common.ScheduleListResult, error) {
			res := &common.ScheduleListResult{Schedules: []*common.ScheduleEntry{}}
			for name, p := range schedules {
				res.Schedules = append(res.Schedules, &common.ScheduleEntry{
					Name:      name,
					Cron:      p.Cron,
					TriggerAt: p.At,
				})
			}
			return res, nil
		}),
	}
	bridge := jhttp.NewBridge(methods, nil)
	t.Cleanup(func() { bridge.Close() })

	mux := http.NewServeMux()
	mux.Handle("/rpc", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testSecret {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		bridge.ServeHTTP(w, r)
	}))
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(t *testing.T, secret string) *Client {
	t.Helper()
	ts := newFakeDaemon(t)
	c := NewClient(ts.URL, secret, nil)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClientGetVersion(t *testing.T) {
	c := newTestClient(t, testSecret)
	v, err := c.GetVersion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if v.Version != "v0.9.0" || v.Commit != "deadbeef" {
		t.Errorf("unexpected version result: %+v", v)
	}
}

func TestClientTriggerAndStatus(t *testing.T) {
	c := newTestClient(t, testSecret)
	ctx := context.Background()

	st, err := c.Trigger(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if !st.InProgress {
		t.Error("expected trigger response to reflect the started cycle")
	}

	st, err = c.Status(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if !st.CanWarm {
		t.Error("expected canWarm from status response")
	}
}

func TestClientFreezeAndReset(t *testing.T) {
	c := newTestClient(t, testSecret)
	ctx := context.Background()
	if err := c.Freeze(ctx); err != nil {
		t.Fatalf("freeze: %s", err.Error())
	}
	if err := c.Reset(ctx); err != nil {
		t.Fatalf("reset: %s", err.Error())
	}
}

func TestClientConfigure(t *testing.T) {
	c := newTestClient(t, testSecret)
	cooldown := 30
	res, err := c.Configure(context.Background(), &common.ConfigureParams{CooldownSeconds: &cooldown})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if res.CooldownSeconds != 30 {
		t.Errorf("expected cooldown 30, got %d", res.CooldownSeconds)
	}

	// Nil params default to an empty update.
	if _, err := c.Configure(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestClientScheduleRoundTrip(t *testing.T) {
	c := newTestClient(t, testSecret)
	ctx := context.Background()

	if err := c.AddSchedule(ctx, "weekday-morning", "0 9 * * 1-5"); err != nil {
		t.Fatalf("add: %s", err.Error())
	}
	list, err := c.ListSchedules(ctx)
	if err != nil {
		t.Fatalf("list: %s", err.Error())
	}
	if len(list.Schedules) != 1 || list.Schedules[0].Name != "weekday-morning" {
		t.Fatalf("unexpected schedule list: %+v", list.Schedules)
	}
	if err := c.RemoveSchedule(ctx, "weekday-morning"); err != nil {
		t.Fatalf("remove: %s", err.Error())
	}
	if err := c.RemoveSchedule(ctx, "weekday-morning"); err == nil {
		t.Error("expected error removing an unknown schedule")
	}
}

func TestClientScheduleOneShot(t *testing.T) {
	c := newTestClient(t, testSecret)
	ctx := context.Background()

	at := time.Now().Add(time.Hour).Truncate(time.Second)
	if err := c.AddScheduleAt(ctx, "pre-demo", at); err != nil {
		t.Fatalf("add: %s", err.Error())
	}
	list, err := c.ListSchedules(ctx)
	if err != nil {
		t.Fatalf("list: %s", err.Error())
	}
	if len(list.Schedules) != 1 {
		t.Fatalf("unexpected schedule list: %+v", list.Schedules)
	}
	e := list.Schedules[0]
	if e.Cron != "" {
		t.Errorf("expected one-shot entry without cron, got %q", e.Cron)
	}
	if e.TriggerAt != at.Format(time.RFC3339) {
		t.Errorf("expected trigger time %s, got %s", at.Format(time.RFC3339), e.TriggerAt)
	}
}

func TestClientRejectsBadSecret(t *testing.T) {
	c := newTestClient(t, "wrong")
	if _, err := c.GetVersion(context.Background()); err == nil {
		t.Error("expected error with a wrong secret")
	}
}
