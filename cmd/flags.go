package cmd

import "github.com/urfave/cli"

var (
	configPath string
	daemonAddr string

	cooldownSeconds     int
	pollIntervalSeconds int
	warmTarget          string

	scheduleName string
	scheduleCron string
	scheduleAt   string

	// clientFlags are shared by every command that talks to the daemon.
	clientFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, C",
			Usage:       "path to the prewarm config file (default: user config dir)",
			Destination: &configPath,
		},
		cli.StringFlag{
			Name:        "addr, a",
			Usage:       "daemon address, overrides the configured listen address",
			Destination: &daemonAddr,
		},
	}

	configureFlags = append([]cli.Flag{
		cli.IntFlag{
			Name:        "cooldown, d",
			Usage:       "minimum seconds between successful warm calls (0 keeps current)",
			Destination: &cooldownSeconds,
		},
		cli.IntFlag{
			Name:        "poll-interval, p",
			Usage:       "seconds between prediction status polls (0 keeps current)",
			Destination: &pollIntervalSeconds,
		},
		cli.StringFlag{
			Name:        "target, t",
			Usage:       "animation reference sent with warm calls (empty keeps current)",
			Destination: &warmTarget,
		},
	}, clientFlags...)

	scheduleAddFlags = append([]cli.Flag{
		cli.StringFlag{
			Name:        "name, n",
			Usage:       "unique name of the warm schedule",
			Destination: &scheduleName,
		},
		cli.StringFlag{
			Name:        "cron, c",
			Usage:       "5-field cron expression (minute hour day-of-month month day-of-week)",
			Destination: &scheduleCron,
		},
		cli.StringFlag{
			Name:        "at, t",
			Usage:       "one-shot fire time in RFC 3339, mutually exclusive with --cron",
			Destination: &scheduleAt,
		},
	}, clientFlags...)

	scheduleRemoveFlags = append([]cli.Flag{
		cli.StringFlag{
			Name:        "name, n",
			Usage:       "name of the warm schedule to remove",
			Destination: &scheduleName,
		},
	}, clientFlags...)

	warmFlags = append([]cli.Flag{
		cli.StringFlag{
			Name:        "target, t",
			Usage:       "animation reference sent with the warm call (empty uses config)",
			Destination: &warmTarget,
		},
	}, clientFlags...)
)
