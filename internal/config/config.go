// internal/config/config.go
//
// This package handles configuration and the .mediaseq directory structure.
// A project keeps its media source, playback preferences and the list of
// sequences in .mediaseq/config.yaml.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/mediaseq/internal/interval"
)

const (
	// StateDir is the name of the directory created in each project.
	StateDir = ".mediaseq"

	SourceClock = "clock"
	SourceFile  = "file"

	defaultTick     = 50 * time.Millisecond
	defaultDuration = 30
)

const defaultProjectConfigYAML = `# mediaseq project configuration
version: 1

# Media to sequence. source: clock plays a silent timeline of the given
# duration (seconds); source: file plays an audio file (wav, mp3, flac).
media:
  source: clock
  duration: 30
  # source: file
  # path: media/episode.mp3

playback:
  # Granularity of time-advance notifications.
  tick: 50ms
  # Order of sequences sharing a start: longest-first or shortest-first.
  tie_break: longest-first

sequences:
  - {start: 10, end: 15}
  - {start: 12, end: 14}
  - {start: 12, end: 18}
  - {start: 20, end: 25}
`

// MediaConfig selects the media element.
type MediaConfig struct {
	Source   string  `yaml:"source"`
	Duration float64 `yaml:"duration,omitempty"`
	Path     string  `yaml:"path,omitempty"`
}

// PlaybackConfig captures scheduling preferences.
type PlaybackConfig struct {
	Tick     time.Duration `yaml:"tick"`
	TieBreak string        `yaml:"tie_break"`
	Rate     float64       `yaml:"rate,omitempty"`
}

// ProjectConfig models .mediaseq/config.yaml.
type ProjectConfig struct {
	Version   int                 `yaml:"version"`
	Media     MediaConfig         `yaml:"media"`
	Playback  PlaybackConfig      `yaml:"playback"`
	Sequences []interval.Interval `yaml:"sequences"`
}

// Config holds the runtime configuration for a project.
type Config struct {
	// ProjectDir is the directory mediaseq was pointed at.
	ProjectDir string
	// StateDir is ProjectDir/.mediaseq
	StateDir string

	Project ProjectConfig

	fs afero.Fs
}

// LogsDir returns the logs directory for a project.
func LogsDir(projectDir string) string {
	return filepath.Join(projectDir, StateDir, "logs")
}

// InitDir creates the .mediaseq directory structure and a default config
// when none exists.
//
// Structure created:
// .mediaseq/
// ├── config.yaml
// └── logs/        <- mediaseq.log and the playback journal
func InitDir(fsys afero.Fs, projectDir string) error {
	if err := fsys.MkdirAll(LogsDir(projectDir), 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	return ensureProjectConfig(fsys, filepath.Join(projectDir, StateDir, "config.yaml"))
}

// Load reads the project config, falling back to defaults when the file is
// missing.
func Load(fsys afero.Fs, projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, StateDir),
		Project:    defaultProjectConfig(),
		fs:         fsys,
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// JournalPath returns the playback journal location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "playback.log")
}

// MediaPath resolves the media file against the project directory. The
// config keeps the path as written so the project can move.
func (c *Config) MediaPath() string {
	return resolvePath(c.ProjectDir, c.Project.Media.Path)
}

// TieBreak returns the configured ordering policy. The value has already
// been validated by Load.
func (c *Config) TieBreak() interval.TieBreak {
	tb, _ := interval.ParseTieBreak(c.Project.Playback.TieBreak)
	return tb
}

// Tick returns the notification granularity.
func (c *Config) Tick() time.Duration {
	return c.Project.Playback.Tick
}

// Sequences returns the configured intervals.
func (c *Config) Sequences() []interval.Interval {
	return c.Project.Sequences
}

// AddSequences appends intervals and persists the config.
func (c *Config) AddSequences(intervals ...interval.Interval) error {
	if len(intervals) == 0 {
		return nil
	}
	previous := c.Project.Sequences
	c.Project.Sequences = append(append([]interval.Interval{}, previous...), intervals...)
	if err := c.Save(); err != nil {
		c.Project.Sequences = previous
		return err
	}
	return nil
}

// Save validates and writes the project config back to disk.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.fs.MkdirAll(c.StateDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	data, err := c.encode()
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}

// encode marshals the project config, carrying over comments from the file
// being replaced.
func (c *Config) encode() ([]byte, error) {
	var body yaml.Node
	if err := body.Encode(c.Project); err != nil {
		return nil, err
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{&body}}
	if data, err := afero.ReadFile(c.fs, c.ProjectConfigPath()); err == nil {
		var previous yaml.Node
		if yaml.Unmarshal(data, &previous) == nil && previous.Kind == yaml.DocumentNode && len(previous.Content) == 1 {
			copyComments(&previous, doc)
			copyComments(previous.Content[0], &body)
		}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// copyComments copies comments from one node onto another, matching mapping
// entries by key.
func copyComments(from, to *yaml.Node) {
	to.HeadComment = from.HeadComment
	to.LineComment = from.LineComment
	to.FootComment = from.FootComment
	if from.Kind != yaml.MappingNode || to.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(to.Content); i += 2 {
		for j := 0; j+1 < len(from.Content); j += 2 {
			if from.Content[j].Value == to.Content[i].Value {
				copyComments(from.Content[j], to.Content[i])
				copyComments(from.Content[j+1], to.Content[i+1])
				break
			}
		}
	}
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Media: MediaConfig{
			Source:   SourceClock,
			Duration: defaultDuration,
		},
		Playback: PlaybackConfig{
			Tick:     defaultTick,
			TieBreak: interval.LongestFirst.String(),
			Rate:     1,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Media.Source) == "" {
		pc.Media.Source = SourceClock
	}
	if pc.Playback.Tick == 0 {
		pc.Playback.Tick = defaultTick
	}
	if pc.Playback.Rate == 0 {
		pc.Playback.Rate = 1
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Media.Source = strings.ToLower(strings.TrimSpace(pc.Media.Source))
	pc.Media.Path = strings.TrimSpace(pc.Media.Path)
	pc.Playback.TieBreak = strings.ToLower(strings.TrimSpace(pc.Playback.TieBreak))
	if pc.Playback.TieBreak == "" {
		pc.Playback.TieBreak = interval.LongestFirst.String()
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	switch pc.Media.Source {
	case SourceClock:
		if pc.Media.Duration <= 0 {
			return fmt.Errorf("media.duration must be > 0 for clock media")
		}
	case SourceFile:
		if pc.Media.Path == "" {
			return fmt.Errorf("media.path is required for file media")
		}
	default:
		return fmt.Errorf("media.source must be 'clock' or 'file'")
	}
	if pc.Playback.Tick < 0 {
		return fmt.Errorf("playback.tick must be positive")
	}
	if pc.Playback.Rate < 0 {
		return fmt.Errorf("playback.rate must be positive")
	}
	if _, err := interval.ParseTieBreak(pc.Playback.TieBreak); err != nil {
		return fmt.Errorf("playback.tie_break: %w", err)
	}
	for i, iv := range pc.Sequences {
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("sequences[%d]: %w", i, err)
		}
		if pc.Media.Source == SourceClock && iv.End > pc.Media.Duration {
			return fmt.Errorf("sequences[%d]: end %g exceeds media duration %g", i, iv.End, pc.Media.Duration)
		}
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(fsys afero.Fs, path string) error {
	if _, err := fsys.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return afero.WriteFile(fsys, path, []byte(defaultProjectConfigYAML), 0o644)
}
