package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	"github.com/prewarm/prewarm/cmd/common"
	"github.com/prewarm/prewarm/pkg/credman"
	"github.com/prewarm/prewarm/pkg/logger"
	"github.com/prewarm/prewarm/pkg/warmlib"
)

// warm performs one warm cycle in the foreground, without the daemon.
// A spinner runs while the prediction is pending.
func warm(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		common.PrintRuntimeErr(ctx, "warm", "load_config", err)
		return nil
	}
	if cfg.APIBaseURL == "" {
		common.PrintRuntimeErr(ctx, "warm", "load_config",
			errors.New("apiBaseUrl is not set in the config file"))
		return nil
	}
	token, err := credman.NewTokenStore().Token()
	if err != nil && !errors.Is(err, credman.ErrNoToken) {
		common.PrintRuntimeErr(ctx, "warm", "keyring", err)
		return nil
	}
	hc, err := warmlib.NewHTTPClientWithProxy(cfg.ProxyURL, 30*time.Second)
	if err != nil {
		common.PrintRuntimeErr(ctx, "warm", "proxy", err)
		return nil
	}

	target := warmTarget
	if target == "" {
		target = cfg.Target
	}

	p := mpb.New(mpb.WithWidth(16), mpb.WithRefreshRate(120*time.Millisecond))
	spinner := common.InitSpinner(p, "Warming")

	done := make(chan error, 1)
	warmer := warmlib.NewWarmingScheduler(
		warmlib.NewPredictionClient(hc, cfg.APIBaseURL, token),
		nil,
		logger.NewNopLogger(),
		&warmlib.Config{
			CooldownPeriod: cfg.Cooldown(),
			PollInterval:   cfg.PollInterval(),
			Target:         target,
		},
		&warmlib.Handlers{
			WarmingCompleteHandler: func() { done <- nil },
			WarmingErrorHandler:    func(err error) { done <- err },
		},
	)
	defer warmer.Close()

	warmer.Trigger()
	err = <-done
	spinner.SetTotal(-1, true)
	p.Wait()

	if err != nil {
		common.PrintRuntimeErr(ctx, "warm", "warm_cycle", err)
		return nil
	}
	fmt.Println("Inference endpoint is warm!")
	return nil
}
