package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/prewarm/prewarm/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

// Build metadata for the running binary, filled in by Execute.
var (
	commit    string
	buildType string
)

func Execute(args []string, bArgs BuildArgs) error {
	commit = bArgs.Commit
	buildType = bArgs.BuildType
	app := cli.App{
		Name:                  "prewarm",
		HelpName:              "prewarm",
		Usage:                 "Keeps your inference endpoint warm.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "prewarm <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:               "daemon",
				Usage:              "run the warming daemon in the foreground",
				Action:             daemon,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        DaemonDescription,
				Flags:              clientFlags,
			},
			{
				Name:                   "warm",
				Aliases:                []string{"w"},
				Usage:                  "perform a single warm call in the foreground",
				Action:                 warm,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            WarmDescription,
				UseShortOptionHandling: true,
				Flags:                  warmFlags,
			},
			{
				Name:               "trigger",
				Aliases:            []string{"t"},
				Usage:              "feed the daemon's warm trigger gate",
				Action:             trigger,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        TriggerDescription,
				Flags:              clientFlags,
			},
			{
				Name:               "status",
				Aliases:            []string{"s"},
				Usage:              "show the daemon's warming state",
				Action:             status,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StatusDescription,
				Flags:              clientFlags,
			},
			{
				Name:               "freeze",
				Usage:              "suppress warming while real requests run",
				Action:             freeze,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        FreezeDescription,
				Flags:              clientFlags,
			},
			{
				Name:               "reset",
				Usage:              "lift a freeze and restart the cooldown",
				Action:             reset,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ResetDescription,
				Flags:              clientFlags,
			},
			{
				Name:                   "configure",
				Usage:                  "update warming parameters at runtime",
				Action:                 configure,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ConfigureDescription,
				UseShortOptionHandling: true,
				Flags:                  configureFlags,
			},
			{
				Name:               "schedule",
				Usage:              "manage recurring warm triggers",
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ScheduleDescription,
				Subcommands: []cli.Command{
					{
						Name:   "add",
						Usage:  "arm a cron-driven warm trigger",
						Action: scheduleAdd,
						Flags:  scheduleAddFlags,
					},
					{
						Name:   "remove",
						Usage:  "disarm a warm schedule by name",
						Action: scheduleRemove,
						Flags:  scheduleRemoveFlags,
					},
					{
						Name:   "list",
						Usage:  "list the armed warm schedules",
						Action: scheduleList,
						Flags:  clientFlags,
					},
				},
			},
			{
				Name:               "token",
				Usage:              "manage the inference API token",
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        TokenDescription,
				Subcommands: []cli.Command{
					{
						Name:   "set",
						Usage:  "store the API token in the system keyring",
						Action: tokenSet,
					},
					{
						Name:   "delete",
						Usage:  "remove the API token from the system keyring",
						Action: tokenDelete,
					},
				},
			},
			{
				Name:               "events",
				Aliases:            []string{"e"},
				Usage:              "stream warming events from the daemon",
				Action:             events,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        EventsDescription,
				Flags:              clientFlags,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of prewarm",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:                 status,
		Flags:                  clientFlags,
		UseShortOptionHandling: true,
		HideHelp:               true,
		HideVersion:            true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
