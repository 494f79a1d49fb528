package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/prewarm/prewarm/cmd/common"
)

func freeze(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "freeze", "new_client", err)
		return nil
	}
	defer client.Close()
	if err := client.Freeze(context.Background()); err != nil {
		common.PrintRuntimeErr(ctx, "freeze", "freeze", err)
		return nil
	}
	fmt.Println("Warming frozen. Run \"prewarm reset\" to resume.")
	return nil
}

func reset(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "reset", "new_client", err)
		return nil
	}
	defer client.Close()
	if err := client.Reset(context.Background()); err != nil {
		common.PrintRuntimeErr(ctx, "reset", "reset", err)
		return nil
	}
	fmt.Println("Warming reset, cooldown restarted.")
	return nil
}
