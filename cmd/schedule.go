package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/prewarm/prewarm/cmd/common"
	"github.com/prewarm/prewarm/internal/schedule"
)

func scheduleAdd(ctx *cli.Context) error {
	if scheduleName == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("missing required flag: --name"))
	}
	if (scheduleCron == "") == (scheduleAt == "") {
		return common.PrintErrWithCmdHelp(ctx, errors.New("pass exactly one of --cron or --at"))
	}
	var at time.Time
	if scheduleAt != "" {
		var err error
		at, err = time.Parse(time.RFC3339, scheduleAt)
		if err != nil {
			return common.PrintErrWithCmdHelp(ctx,
				fmt.Errorf("invalid --at time %q, expected RFC 3339 (e.g. 2026-08-30T07:30:00Z)", scheduleAt))
		}
	} else if !schedule.Valid(scheduleCron) {
		return common.PrintErrWithCmdHelp(ctx,
			fmt.Errorf("invalid cron expression %q, expected 5-field format (minute hour day-of-month month day-of-week)", scheduleCron))
	}
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "schedule", "new_client", err)
		return nil
	}
	defer client.Close()
	if scheduleAt != "" {
		if err := client.AddScheduleAt(context.Background(), scheduleName, at); err != nil {
			common.PrintRuntimeErr(ctx, "schedule", "add", err)
			return nil
		}
		fmt.Printf("Armed one-shot warm schedule %q, fires at %s\n", scheduleName, at.Format(time.RFC3339))
		return nil
	}
	if err := client.AddSchedule(context.Background(), scheduleName, scheduleCron); err != nil {
		common.PrintRuntimeErr(ctx, "schedule", "add", err)
		return nil
	}
	fmt.Printf("Armed warm schedule %q (%s)\n", scheduleName, scheduleCron)
	return nil
}

func scheduleRemove(ctx *cli.Context) error {
	if scheduleName == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("missing required flag: --name"))
	}
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "schedule", "new_client", err)
		return nil
	}
	defer client.Close()
	if err := client.RemoveSchedule(context.Background(), scheduleName); err != nil {
		common.PrintRuntimeErr(ctx, "schedule", "remove", err)
		return nil
	}
	fmt.Printf("Disarmed warm schedule %q\n", scheduleName)
	return nil
}

func scheduleList(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "schedule", "new_client", err)
		return nil
	}
	defer client.Close()
	list, err := client.ListSchedules(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "schedule", "list", err)
		return nil
	}
	if len(list.Schedules) == 0 {
		fmt.Println("prewarm: no warm schedules armed")
		return nil
	}
	txt := "Armed warm schedules:"
	txt += "\n\n--------------------------------------------------------------------"
	txt += "\n|         Name         |      Cron      |       Next Fire        |"
	txt += "\n|----------------------|----------------|------------------------|"
	for _, e := range list.Schedules {
		name := e.Name
		if len(name) > 20 {
			name = name[:17] + "..."
		}
		txt += fmt.Sprintf("\n| %s | %s | %s |",
			common.Beaut(name, 20),
			common.Beaut(e.Cron, 14),
			common.Beaut(e.TriggerAt, 22),
		)
	}
	txt += "\n--------------------------------------------------------------------"
	fmt.Println(txt)
	return nil
}
