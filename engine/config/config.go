// Package config loads the sandbox settings from TOML and keeps them fresh
// while the app runs.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/hubastard/sprout/engine/colors"
	"github.com/hubastard/sprout/engine/core"
)

type Config struct {
	Window  Window  `toml:"window"`
	Render  Render  `toml:"render"`
	Sandbox Sandbox `toml:"sandbox"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

type Render struct {
	ClearColour [4]uint16 `toml:"clear_colour"` // 0..255 per channel
	LogLevel    string    `toml:"log_level"`
}

type Sandbox struct {
	Sprites    int     `toml:"sprites"`
	FontSize   float32 `toml:"font_size"`
	CaptureDir string  `toml:"capture_dir"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "Sprout (2D)",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: Render{
			ClearColour: [4]uint16{colors.DarkGray.R, colors.DarkGray.G, colors.DarkGray.B, colors.DarkGray.A},
			LogLevel:    "info",
		},
		Sandbox: Sandbox{
			Sprites:    200,
			FontSize:   20,
			CaptureDir: "captures",
		},
	}
}

// Parse decodes data over the defaults, so a file only needs the keys it
// changes.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys: %s", strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	for i, ch := range c.Render.ClearColour {
		if ch > 255 {
			errs = append(errs, fmt.Errorf("clear_colour[%d] = %d exceeds 255", i, ch))
		}
	}
	if _, err := log.ParseLevel(c.Render.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q: %w", c.Render.LogLevel, err))
	}
	if c.Sandbox.Sprites < 0 {
		errs = append(errs, fmt.Errorf("sprites = %d must not be negative", c.Sandbox.Sprites))
	}
	if c.Sandbox.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font_size = %v must be positive", c.Sandbox.FontSize))
	}
	return errors.Join(errs...)
}

func (c Config) WindowConfig() core.WindowConfig {
	return core.WindowConfig{
		Title:  c.Window.Title,
		Width:  c.Window.Width,
		Height: c.Window.Height,
		VSync:  c.Window.VSync,
	}
}

func (c Config) ClearColour() colors.Colour {
	cc := c.Render.ClearColour
	return colors.Colour{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}
}

// Watch calls onChange with the new config every time the file at path is
// written or replaced, until ctx is cancelled. Invalid edits are logged and
// skipped. onChange runs on the watcher goroutine.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	// editors often replace the file, so watch its directory
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %q: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target || !e.Op.Has(fsnotify.Write) && !e.Op.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(target)
			if err != nil {
				core.LogWarn("config reload skipped: %v", err)
				continue
			}
			core.LogInfo("config reloaded from %s", target)
			onChange(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			core.LogError("config watcher: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}
