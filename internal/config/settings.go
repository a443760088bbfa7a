package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/keessnoek/ing-transactie-verwerker/internal/api"
	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultBaseURL     = "http://localhost:5000"
	DefaultTheme       = "default"
	DefaultReloadDelay = time.Second
	DefaultLogFile     = "~/.config/autocat/autocat.log"
)

// Settings is the resolved application configuration.
type Settings struct {
	Logging Logging
	UI      UI
	API     API
}

// API configures the backend connection.
type API struct {
	BaseURL      string
	AnalysisPath string
	PreviewPath  string
	AssignPath   string
	Timeout      time.Duration
}

// UI configures the review screen.
type UI struct {
	Theme          string
	Locale         string
	CurrencySymbol string
	ReloadDelay    time.Duration
}

// Logging configures slog.
type Logging struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", api.DefaultTimeout)
	v.SetDefault("api.analysis_path", api.DefaultAnalysisPath)
	v.SetDefault("api.preview_path", api.DefaultPreviewPath)
	v.SetDefault("api.assign_path", api.DefaultAssignPath)

	v.SetDefault("ui.theme", DefaultTheme)
	v.SetDefault("ui.reload_delay", DefaultReloadDelay)
	v.SetDefault("ui.locale", "nl")
	v.SetDefault("ui.currency_symbol", "€")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

// Load reads and validates the settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		API: API{
			BaseURL:      strings.TrimSpace(v.GetString("api.base_url")),
			Timeout:      v.GetDuration("api.timeout"),
			AnalysisPath: v.GetString("api.analysis_path"),
			PreviewPath:  v.GetString("api.preview_path"),
			AssignPath:   v.GetString("api.assign_path"),
		},
		UI: UI{
			Theme:          v.GetString("ui.theme"),
			ReloadDelay:    v.GetDuration("ui.reload_delay"),
			Locale:         v.GetString("ui.locale"),
			CurrencySymbol: v.GetString("ui.currency_symbol"),
		},
		Logging: Logging{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if s.API.BaseURL == "" {
		return s, fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	if s.API.Timeout < 0 {
		return s, fmt.Errorf("%w: api.timeout must not be negative", common.ErrInvalidConfig)
	}
	if s.UI.ReloadDelay < 0 {
		return s, fmt.Errorf("%w: ui.reload_delay must not be negative", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(s.Logging.Level); err != nil {
		return s, err
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return s, fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, s.Logging.Format)
	}

	return s, nil
}

// Paths returns the configured endpoint paths.
func (a API) Paths() api.Paths {
	return api.Paths{
		Analysis: a.AnalysisPath,
		Preview:  a.PreviewPath,
		Assign:   a.AssignPath,
	}
}

// LogFile returns the log destination. When the terminal is taken over by
// the review screen an unset file falls back to DefaultLogFile.
func (l Logging) LogFile(interactive bool) string {
	if l.File == "" && interactive {
		return ExpandPath(DefaultLogFile)
	}
	return l.File
}
