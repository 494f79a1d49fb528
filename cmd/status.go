package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/prewarm/prewarm/cmd/common"
	wire "github.com/prewarm/prewarm/common"
)

func status(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "status", "new_client", err)
		return nil
	}
	defer client.Close()
	st, err := client.Status(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "status", "get_status", err)
		return nil
	}
	printStatus(st)
	return nil
}

func trigger(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "trigger", "new_client", err)
		return nil
	}
	defer client.Close()
	st, err := client.Trigger(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "trigger", "trigger", err)
		return nil
	}
	if st.InProgress {
		fmt.Println("Warm cycle running.")
	} else {
		fmt.Println("Warm trigger accepted.")
	}
	printStatus(st)
	return nil
}

func printStatus(st *wire.StatusResult) {
	fmt.Printf("  in progress:  %v\n", st.InProgress)
	fmt.Printf("  can warm:     %v\n", st.CanWarm)
	fmt.Printf("  last attempt: %s\n", fmtLast(st.LastWarmAttemptAt, st.SinceLastAttemptMs))
	fmt.Printf("  last success: %s\n", fmtLast(st.LastSuccessfulWarmAt, st.SinceLastSuccessMs))
}

func fmtLast(at string, sinceMs int64) string {
	if at == "" {
		return "never"
	}
	since := time.Duration(sinceMs) * time.Millisecond
	return fmt.Sprintf("%s (%s ago)", at, since.Round(time.Second))
}
