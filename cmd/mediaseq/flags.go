package main

import (
	"time"

	"github.com/urfave/cli"
)

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "dir, d",
		Usage:  "project directory holding .mediaseq/",
		Value:  ".",
		EnvVar: "MEDIASEQ_DIR",
	},
	cli.DurationFlag{
		Name:  "tick, t",
		Usage: "override the time-advance granularity (e.g. 20ms)",
		Value: 0 * time.Millisecond,
	},
}

var addFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "start, s",
		Usage: "sequence start in seconds",
	},
	cli.Float64Flag{
		Name:  "end, e",
		Usage: "sequence end in seconds",
	},
}

var nextFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "at",
		Usage: "reference time in seconds",
	},
	cli.BoolFlag{
		Name:  "overlap, o",
		Usage: "also consider sequences in progress at the reference time",
	},
}

var playFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "from, f",
		Usage: "start time in seconds",
	},
	cli.Float64Flag{
		Name:  "to",
		Usage: "end time in seconds (default: end of media)",
	},
}

var playNextFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "at",
		Usage: "reference time in seconds",
	},
}
