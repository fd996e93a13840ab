package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceFile names one on-disk import batch.
type SourceFile struct {
	// Kind selects the importer: bankholidays, sunrise, sunset,
	// recurring, recurringrule, dayevents, textblocks or ics.
	Kind string `yaml:"kind"`
	// Path is the batch file (YAML for record kinds, raw text for
	// textblocks, raw iCalendar for ics).
	Path string `yaml:"path"`
}

// Config is the top-level run configuration.
type Config struct {
	// Year is the calendar year to build. Zero means the current year.
	Year int `yaml:"year"`

	// Snapshot is where the serialized tree is written after imports.
	Snapshot string `yaml:"snapshot"`

	// Listen is the HTTP listen address for the read-only view.
	Listen string `yaml:"listen"`

	// Sources are applied in order on every run.
	Sources []SourceFile `yaml:"sources"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Year:     0,
		Snapshot: "calendar.xml",
		Listen:   "127.0.0.1:8080",
		Sources:  []SourceFile{},
	}
}

// Normalize fills in missing/zero values so partially-filled configs
// still behave correctly.
func (c *Config) Normalize() {
	if c.Year == 0 {
		c.Year = time.Now().Year()
	}
	if c.Snapshot == "" {
		c.Snapshot = "calendar.xml"
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Sources == nil {
		c.Sources = []SourceFile{}
	}
}

// Load loads configuration from the given YAML path. A missing file is
// a first run: a default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename, 0600).
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".calbase-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config delegating to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
