// Package manifest locates and parses docblock.toml, the per-project
// manifest that supplies formatter defaults for the CLI.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"docblock/internal/docblock"
)

// FileName is the manifest file searched for upward from the start directory.
const FileName = "docblock.toml"

// Manifest is a parsed docblock.toml plus its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest's TOML sections.
type Config struct {
	Package PackageConfig `toml:"package"`
	Format  FormatConfig  `toml:"format"`
}

// PackageConfig is the [package] section.
type PackageConfig struct {
	Name string `toml:"name"`
}

// FormatConfig is the [format] section. Fields are int64 so range checks run
// before narrowing to the engine's option types.
type FormatConfig struct {
	IndentWidth        int64 `toml:"indent_width"`
	UseTabs            bool  `toml:"use_tabs"`
	MaxLineLength      int64 `toml:"max_line_length"`
	MinLastColumnWidth int64 `toml:"min_last_column_width"`
}

// Find walks upward from startDir looking for a docblock.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a manifest file and validates the [format] section.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("format", "indent_width") && cfg.Format.IndentWidth < 0 {
		return nil, fmt.Errorf("%s: indent_width must be >= 0", path)
	}
	if meta.IsDefined("format", "max_line_length") && cfg.Format.MaxLineLength <= 0 {
		return nil, fmt.Errorf("%s: max_line_length must be > 0", path)
	}
	if meta.IsDefined("format", "min_last_column_width") && cfg.Format.MinLastColumnWidth <= 0 {
		return nil, fmt.Errorf("%s: min_last_column_width must be > 0", path)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadNearest finds and loads the manifest governing startDir. The returned
// bool reports whether one exists.
func LoadNearest(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Options converts the [format] section into engine options, keeping engine
// defaults for fields the manifest leaves at zero.
func (m *Manifest) Options() (docblock.Options, error) {
	var opt docblock.Options
	var err error
	if m == nil {
		return opt, nil
	}
	f := m.Config.Format
	if opt.IndentWidth, err = safecast.Conv[int](f.IndentWidth); err != nil {
		return opt, fmt.Errorf("%s: indent_width: %w", m.Path, err)
	}
	if opt.MaxLineLength, err = safecast.Conv[int](f.MaxLineLength); err != nil {
		return opt, fmt.Errorf("%s: max_line_length: %w", m.Path, err)
	}
	if opt.MinLastColumnWidth, err = safecast.Conv[int](f.MinLastColumnWidth); err != nil {
		return opt, fmt.Errorf("%s: min_last_column_width: %w", m.Path, err)
	}
	opt.UseTabs = f.UseTabs
	return opt, nil
}

// Starter returns the manifest content written by `docblock init`.
func Starter(name string) string {
	return fmt.Sprintf(`[package]
name = %q

[format]
indent_width = 0
use_tabs = false
max_line_length = 80
min_last_column_width = 20
`, name)
}
