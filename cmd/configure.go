package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/prewarm/prewarm/cmd/common"
	wire "github.com/prewarm/prewarm/common"
)

func configure(ctx *cli.Context) error {
	params := &wire.ConfigureParams{}
	if cooldownSeconds > 0 {
		params.CooldownSeconds = &cooldownSeconds
	}
	if pollIntervalSeconds > 0 {
		params.PollIntervalSeconds = &pollIntervalSeconds
	}
	if warmTarget != "" {
		params.Target = &warmTarget
	}
	if params.CooldownSeconds == nil && params.PollIntervalSeconds == nil && params.Target == nil {
		return common.PrintErrWithCmdHelp(ctx,
			errors.New("nothing to configure, pass at least one flag"))
	}
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "configure", "new_client", err)
		return nil
	}
	defer client.Close()
	res, err := client.Configure(context.Background(), params)
	if err != nil {
		common.PrintRuntimeErr(ctx, "configure", "configure", err)
		return nil
	}
	fmt.Println("Warming configuration updated:")
	fmt.Printf("  cooldown:      %ds\n", res.CooldownSeconds)
	fmt.Printf("  poll interval: %ds\n", res.PollIntervalSeconds)
	fmt.Printf("  target:        %s\n", res.Target)
	return nil
}
