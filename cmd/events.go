package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/prewarm/prewarm/cmd/common"
	wire "github.com/prewarm/prewarm/common"
	"github.com/prewarm/prewarm/pkg/warmcli"
)

func events(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "events", "new_client", err)
		return nil
	}
	defer client.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Listening for warming events, press Ctrl+C to stop.")
	err = client.Listen(runCtx, warmcli.EventHandlers{
		wire.NotifyWarmingStarted: func(params json.RawMessage) error {
			var n wire.WarmingStartedNotification
			if err := json.Unmarshal(params, &n); err != nil {
				return err
			}
			fmt.Printf("warm cycle started at %s\n", n.StartedAt)
			return nil
		},
		wire.NotifyWarmingCompleted: func(params json.RawMessage) error {
			var n wire.WarmingCompletedNotification
			if err := json.Unmarshal(params, &n); err != nil {
				return err
			}
			fmt.Printf("warm cycle completed at %s\n", n.CompletedAt)
			return nil
		},
		wire.NotifyWarmingFailed: func(params json.RawMessage) error {
			var n wire.WarmingFailedNotification
			if err := json.Unmarshal(params, &n); err != nil {
				return err
			}
			fmt.Printf("warm cycle failed: %s\n", n.Error)
			return nil
		},
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		common.PrintRuntimeErr(ctx, "events", "listen", err)
	}
	return nil
}
