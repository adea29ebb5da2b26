package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/kingrea/mediaseq/internal/config"
	"github.com/kingrea/mediaseq/internal/interval"
	"github.com/kingrea/mediaseq/internal/seqerr"
)

func run(t *testing.T, dir string, args ...string) error {
	t.Helper()
	return Execute(append([]string{"mediaseq", "--dir", dir}, args...))
}

func TestInitAndAdd(t *testing.T) {
	dir := t.TempDir()
	if err := run(t, dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.StateDir, "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if err := run(t, dir, "add", "--start", "26", "--end", "28"); err != nil {
		t.Fatalf("add: %v", err)
	}
	cfg, err := config.Load(afero.NewOsFs(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	seqs := cfg.Sequences()
	if got := seqs[len(seqs)-1]; got != (interval.Interval{Start: 26, End: 28}) {
		t.Fatalf("last sequence = %v", got)
	}
	if err := run(t, dir, "list"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := run(t, dir, "next", "--at", "12", "--overlap"); err != nil {
		t.Fatalf("next: %v", err)
	}
}

func TestAddRejectsInvalidInterval(t *testing.T) {
	dir := t.TempDir()
	if err := run(t, dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	err := run(t, dir, "add", "--start", "5", "--end", "5")
	if !errors.Is(err, seqerr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestPlayRunsToEnd(t *testing.T) {
	dir := t.TempDir()
	if err := run(t, dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := run(t, dir, "--tick", "5ms", "play", "--from", "1", "--to", "1.05"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.StateDir, "logs", "playback.log")); err != nil {
		t.Fatalf("journal not written: %v", err)
	}
}

func TestPlayRejectsOutOfRange(t *testing.T) {
	dir := t.TempDir()
	if err := run(t, dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	err := run(t, dir, "play", "--from", "5", "--to", "4")
	if !errors.Is(err, seqerr.ErrOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}
