package server

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"

	"github.com/prewarm/prewarm/common"
	"github.com/prewarm/prewarm/pkg/logger"
)

// newNotifyPair wires a push-enabled jrpc2 server to a client that records
// received notifications.
func newNotifyPair(t *testing.T) (*jrpc2.Server, *sync.Map) {
	t.Helper()
	cch, sch := channel.Direct()

	received := &sync.Map{}
	client := jrpc2.NewClient(cch, &jrpc2.ClientOptions{
		OnNotify: func(req *jrpc2.Request) {
			var params json.RawMessage
			_ = req.UnmarshalParams(&params)
			received.Store(req.Method(), string(params))
		},
	})
	t.Cleanup(func() { client.Close() })

	srv := jrpc2.NewServer(handler.Map{}, &jrpc2.ServerOptions{AllowPush: true})
	srv.Start(sch)
	t.Cleanup(func() { srv.Stop() })
	return srv, received
}

func TestNotifier_Broadcast(t *testing.T) {
	n := NewNotifier(logger.NewNopLogger())

	srv, received := newNotifyPair(t)
	n.Register(srv)
	if n.Count() != 1 {
		t.Fatalf("expected 1 registered server, got %d", n.Count())
	}

	n.Broadcast(common.NotifyWarmingStarted, &common.WarmingStartedNotification{
		StartedAt: time.Now().Format(time.RFC3339),
	})

	// Notifications are delivered asynchronously to the client.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := received.Load(common.NotifyWarmingStarted); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for warming.started notification")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNotifier_UnregisterStopsDelivery(t *testing.T) {
	n := NewNotifier(logger.NewNopLogger())

	srv, received := newNotifyPair(t)
	n.Register(srv)
	n.Unregister(srv)
	if n.Count() != 0 {
		t.Fatalf("expected 0 registered servers, got %d", n.Count())
	}

	n.Broadcast(common.NotifyWarmingFailed, &common.WarmingFailedNotification{Error: "boom"})
	time.Sleep(100 * time.Millisecond)

	if _, ok := received.Load(common.NotifyWarmingFailed); ok {
		t.Error("expected no delivery after unregister")
	}
}

func TestNotifier_DropsFailedServers(t *testing.T) {
	mock := logger.NewMockLogger()
	n := NewNotifier(mock)

	srv, _ := newNotifyPair(t)
	n.Register(srv)

	// Stopping the server makes Notify fail, which should unregister it.
	srv.Stop()
	n.Broadcast(common.NotifyWarmingCompleted, &common.WarmingCompletedNotification{
		CompletedAt: time.Now().Format(time.RFC3339),
	})

	if n.Count() != 0 {
		t.Errorf("expected failed server to be dropped, count=%d", n.Count())
	}
	if len(mock.WarningCalls) == 0 {
		t.Error("expected a warning for the failed push")
	}
}
