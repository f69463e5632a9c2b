// Package config reads the optional retain.yaml that sizes the desktop and
// names its stylesheet.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/ui"
)

// FileName is the config file looked up in a project directory.
const FileName = "retain.yaml"

// Defaults applied by Resolve.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Config represents the optional retain.yaml configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Desktop DesktopConfig `yaml:"desktop"`
	Input   InputConfig   `yaml:"input"`
	Style   StyleConfig   `yaml:"style"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// DesktopConfig sizes the desktop.
type DesktopConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// InputConfig tunes input handling.
type InputConfig struct {
	DoubleClickMillis int `yaml:"double_click_ms,omitempty"`
}

// StyleConfig points at a YAML or TOML stylesheet, relative to the project.
type StyleConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root                string
	ModulePath          string
	AppName             string
	Width, Height       int
	DoubleClickInterval time.Duration
	// StylePath is absolute, or empty when no stylesheet is configured.
	StylePath string
}

// LoadOptional reads retain.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads retain.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	modPath := modulePath(dir)
	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modPath, dir)
	}

	width, height := cfg.Desktop.Width, cfg.Desktop.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}

	interval := ui.DefaultDoubleClickInterval
	if cfg.Input.DoubleClickMillis > 0 {
		interval = time.Duration(cfg.Input.DoubleClickMillis) * time.Millisecond
	}

	stylePath := strings.TrimSpace(cfg.Style.Path)
	if stylePath != "" && !filepath.IsAbs(stylePath) {
		stylePath = filepath.Join(dir, stylePath)
	}

	return &Resolved{
		Root:                dir,
		ModulePath:          modPath,
		AppName:             appName,
		Width:               width,
		Height:              height,
		DoubleClickInterval: interval,
		StylePath:           stylePath,
	}, nil
}

func (c *Config) validate() error {
	if c.Desktop.Width < 0 || c.Desktop.Height < 0 {
		return fmt.Errorf("desktop size cannot be negative (got %dx%d)", c.Desktop.Width, c.Desktop.Height)
	}
	if c.Input.DoubleClickMillis < 0 {
		return fmt.Errorf("input.double_click_ms cannot be negative (got %d)", c.Input.DoubleClickMillis)
	}
	return nil
}

// NewDesktop returns a desktop sized and tuned by r.
func (r *Resolved) NewDesktop() *ui.Desktop {
	d := ui.NewDesktop(geometry.RectFromXYWH(0, 0, r.Width, r.Height))
	d.DoubleClickInterval = r.DoubleClickInterval
	return d
}

// LoadStylesheet loads the configured stylesheet, or returns an empty one
// when none is configured.
func (r *Resolved) LoadStylesheet() (*style.Stylesheet, error) {
	if r.StylePath == "" {
		return style.New(), nil
	}
	return style.Load(r.StylePath)
}

// FindProjectRoot walks up from dir to the first directory holding
// retain.yaml or go.mod.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s or go.mod found", FileName)
		}
		dir = parent
	}
}

// modulePath returns the module path from dir/go.mod, or "" without one.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "retain_app"
	}
	return base
}
