package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/prewarm/prewarm/cmd/common"
	wire "github.com/prewarm/prewarm/common"
	"github.com/prewarm/prewarm/internal/config"
	"github.com/prewarm/prewarm/internal/schedule"
	"github.com/prewarm/prewarm/internal/server"
	"github.com/prewarm/prewarm/pkg/credman"
	"github.com/prewarm/prewarm/pkg/logger"
	"github.com/prewarm/prewarm/pkg/warmlib"
)

func daemon(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "load_config", err)
		return nil
	}
	l, err := daemonLogger(cfg.LogPath)
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "open_log", err)
		return nil
	}
	defer l.Close()
	if cfg.APIBaseURL == "" {
		common.PrintRuntimeErr(ctx, "daemon", "load_config",
			errors.New("apiBaseUrl is not set in the config file"))
		return nil
	}
	if daemonAddr != "" {
		cfg.ListenAddr = daemonAddr
	}

	token, err := credman.NewTokenStore().Token()
	if err != nil {
		if !errors.Is(err, credman.ErrNoToken) {
			common.PrintRuntimeErr(ctx, "daemon", "keyring", err)
			return nil
		}
		l.Warning("no API token in the keyring, warm calls go out unauthenticated")
	}

	hc, err := warmlib.NewHTTPClientWithProxy(cfg.ProxyURL, 30*time.Second)
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "proxy", err)
		return nil
	}

	notifier := server.NewNotifier(l)
	warmer := warmlib.NewWarmingScheduler(
		warmlib.NewPredictionClient(hc, cfg.APIBaseURL, token),
		nil,
		l,
		&warmlib.Config{
			CooldownPeriod: cfg.Cooldown(),
			PollInterval:   cfg.PollInterval(),
			Target:         cfg.Target,
		},
		notifyHandlers(notifier),
	)
	defer warmer.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := schedule.New(runCtx, func(name string) {
		l.Info("schedule %s fired", name)
		warmer.Trigger()
	})
	armSchedules(l, sched, cfg.Schedules)

	serv := server.NewServer(l, server.NewRPCServer(&server.RPCConfig{
		Secret:    cfg.RPCSecret,
		Version:   ctx.App.Version,
		Commit:    commit,
		BuildType: buildType,
	}, warmer, sched), notifier, cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() { errCh <- serv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			common.PrintRuntimeErr(ctx, "daemon", "serve", err)
		}
	case <-runCtx.Done():
		l.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := serv.Shutdown(shutCtx); err != nil {
			common.PrintRuntimeErr(ctx, "daemon", "shutdown", err)
		}
	}
	return nil
}

// daemonLogger logs to the console, mirrored to logPath when set.
func daemonLogger(logPath string) (logger.Logger, error) {
	console := logger.NewStandardLogger(log.Default())
	if logPath == "" {
		return console, nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return logger.NewMultiLogger(console, &fileLogger{
		StandardLogger: logger.NewStandardLogger(log.New(f, "", log.LstdFlags)),
		f:              f,
	}), nil
}

// fileLogger closes its backing file on Close.
type fileLogger struct {
	*logger.StandardLogger
	f *os.File
}

func (fl *fileLogger) Close() error {
	return fl.f.Close()
}

// notifyHandlers bridges warm cycle hooks onto the event stream.
func notifyHandlers(n *server.Notifier) *warmlib.Handlers {
	return &warmlib.Handlers{
		WarmingStartHandler: func() {
			n.Broadcast(wire.NotifyWarmingStarted, &wire.WarmingStartedNotification{
				StartedAt: time.Now().Format(time.RFC3339),
			})
		},
		WarmingCompleteHandler: func() {
			n.Broadcast(wire.NotifyWarmingCompleted, &wire.WarmingCompletedNotification{
				CompletedAt: time.Now().Format(time.RFC3339),
			})
		},
		WarmingErrorHandler: func(err error) {
			n.Broadcast(wire.NotifyWarmingFailed, &wire.WarmingFailedNotification{
				Error: err.Error(),
			})
		},
	}
}

// armSchedules arms the warm schedules declared in the config file.
// Invalid entries are skipped with a warning so one bad expression does
// not keep the daemon from starting.
func armSchedules(l logger.Logger, sched *schedule.Scheduler, entries []config.Schedule) {
	for _, e := range entries {
		if e.Name == "" || !schedule.Valid(e.Cron) {
			l.Warning("skipping invalid schedule %q (%q)", e.Name, e.Cron)
			continue
		}
		next, err := schedule.NextOccurrence(e.Cron, time.Now())
		if err != nil {
			l.Warning("skipping schedule %q: %s", e.Name, err.Error())
			continue
		}
		sched.Add(schedule.WarmEvent{
			Name:      e.Name,
			TriggerAt: next,
			CronExpr:  e.Cron,
		})
		l.Info("armed schedule %s, next fire at %s", e.Name, next.Format(time.RFC3339))
	}
}
