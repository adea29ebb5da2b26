// cmd/mediaseq/main.go
//
// This is the entry point for the mediaseq CLI.
//
// Flow:
// 1. Resolve the project directory and load .mediaseq/config.yaml
// 2. Build the media element and the sequencer from it
// 3. Run the requested command: inspect sequences, play headless, or open the TUI

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

const version = "0.3.0"

func main() {
	if err := Execute(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	app := cli.App{
		Name:      "mediaseq",
		HelpName:  "mediaseq",
		Usage:     "play a media timeline as a series of sequences",
		Version:   version,
		UsageText: "mediaseq [global options] <command> [arguments...]",
		Flags:     globalFlags,
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "create .mediaseq/ with a default config",
				Action: initProject,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "show sequences in playback order",
				Action:  list,
			},
			{
				Name:   "add",
				Usage:  "add a sequence to the project config",
				Action: add,
				Flags:  addFlags,
			},
			{
				Name:   "next",
				Usage:  "show the sequence following a reference time",
				Action: next,
				Flags:  nextFlags,
			},
			{
				Name:   "play",
				Usage:  "play from a start time to an end time",
				Action: play,
				Flags:  playFlags,
			},
			{
				Name:   "play-next",
				Usage:  "play the sequence following a reference time",
				Action: playNext,
				Flags:  playNextFlags,
			},
			{
				Name:   "play-all",
				Usage:  "play every sequence, extending across overlaps",
				Action: playAll,
			},
			{
				Name:   "tui",
				Usage:  "open the interactive player",
				Action: runTUI,
			},
		},
	}
	return app.Run(args)
}
