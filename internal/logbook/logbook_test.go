package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendAndTail(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "logs", "playback.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.clock = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	book.Info("started [10, 15)")
	book.Warn("postponed to [12, 18)")
	book.Error("boom")
	lines := book.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "2024-01-02T03:04:05Z WARN  postponed to [12, 18)" {
		t.Fatalf("unexpected line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "ERROR boom") {
		t.Fatalf("unexpected line %q", lines[1])
	}
}

func TestTailMissingFile(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "playback.log"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := book.Tail(5); lines != nil {
		t.Fatalf("expected nil tail, got %v", lines)
	}
	var nilBook *Logbook
	nilBook.Info("ignored")
	if nilBook.Path() != "" {
		t.Fatalf("nil logbook path should be empty")
	}
}
