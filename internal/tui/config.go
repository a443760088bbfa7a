package tui

import (
	"time"

	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/format"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
)

// DefaultReloadDelay is the pause between a successful commit and the
// reload of the analysis.
const DefaultReloadDelay = time.Second

// DefaultRequestTimeout bounds each backend call made by the review screen.
const DefaultRequestTimeout = 30 * time.Second

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Formatter      format.Formatter
	Reporter       common.Reporter
	Recorder       *Recorder
	ReloadDelay    time.Duration
	RequestTimeout time.Duration
	Width          int
	Height         int
	AltScreen      bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Formatter:      format.Default,
		Reporter:       common.NewReporter(),
		ReloadDelay:    DefaultReloadDelay,
		RequestTimeout: DefaultRequestTimeout,
		Width:          100,
		Height:         30,
		AltScreen:      true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithFormatter sets how amounts and counts are rendered.
func WithFormatter(f format.Formatter) Option {
	return func(c *Config) {
		c.Formatter = f
	}
}

// WithReporter replaces the error reporter.
func WithReporter(r common.Reporter) Option {
	return func(c *Config) {
		c.Reporter = r
	}
}

// WithReloadDelay sets the pause before reloading after a successful
// commit. Non-positive values keep the default.
func WithReloadDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ReloadDelay = d
		}
	}
}

// WithRequestTimeout bounds each backend call. Non-positive values keep the
// default.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.RequestTimeout = d
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen controls whether the program takes over the full terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

// WithRecorder captures every frame to disk for debugging.
func WithRecorder(r *Recorder) Option {
	return func(c *Config) {
		c.Recorder = r
	}
}
