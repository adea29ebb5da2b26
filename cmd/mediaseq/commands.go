package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/kingrea/mediaseq/internal/config"
	"github.com/kingrea/mediaseq/internal/events"
	"github.com/kingrea/mediaseq/internal/interval"
	"github.com/kingrea/mediaseq/internal/sequencer"
	"github.com/kingrea/mediaseq/internal/tui"
)

func initProject(c *cli.Context) error {
	dir, err := filepath.Abs(c.GlobalString("dir"))
	if err != nil {
		return fmt.Errorf("resolve project dir: %w", err)
	}
	if err := config.InitDir(afero.NewOsFs(), dir); err != nil {
		return err
	}
	fmt.Printf("Initialized %s\n", filepath.Join(dir, config.StateDir))
	return nil
}

func list(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	set, err := interval.NewSet(cfg.TieBreak(), cfg.Sequences()...)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		fmt.Println("No sequences. Add one with: mediaseq add --start <s> --end <s>")
		return nil
	}
	fmt.Printf("%d sequences (%s)\n", set.Len(), set.TieBreak())
	for i, iv := range set.All() {
		fmt.Printf("%3d  %-18s %6.2fs\n", i+1, iv, iv.Duration())
	}
	return nil
}

func add(c *cli.Context) error {
	if !c.IsSet("start") || !c.IsSet("end") {
		return cli.ShowCommandHelp(c, c.Command.Name)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	iv := interval.Interval{Start: c.Float64("start"), End: c.Float64("end")}
	if err := iv.Validate(); err != nil {
		return err
	}
	if err := cfg.AddSequences(iv); err != nil {
		return err
	}
	fmt.Printf("Added %s to %s\n", iv, cfg.ProjectConfigPath())
	return nil
}

func next(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	set, err := interval.NewSet(cfg.TieBreak(), cfg.Sequences()...)
	if err != nil {
		return err
	}
	at := c.Float64("at")
	iv, ok := set.Next(at, c.Bool("overlap"))
	if !ok {
		fmt.Printf("No sequence after %gs\n", at)
		return nil
	}
	fmt.Println(iv)
	return nil
}

func play(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()
	var end float64 = sequencer.ToEnd
	if c.IsSet("to") {
		end = c.Float64("to")
	}
	from := c.Float64("from")
	return runHeadless(e, events.KindSegmentFinished, func() (bool, error) {
		return true, e.seq.PlayFrom(from, end)
	})
}

func playNext(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()
	at := c.Float64("at")
	return runHeadless(e, events.KindSegmentFinished, func() (bool, error) {
		played, err := e.seq.PlayNextAfter(at)
		if err == nil && !played {
			fmt.Printf("No sequence after %gs\n", at)
		}
		return played, err
	})
}

func playAll(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()
	return runHeadless(e, events.KindAllFinished, func() (bool, error) {
		return true, e.seq.PlayAll()
	})
}

func runTUI(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	app := tui.NewApp(e.seq, e.driver,
		tui.WithLogbook(e.book),
		tui.WithTick(e.tick),
		tui.WithMediaLabel(e.label),
		tui.WithLogger(e.logger),
	)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
