package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/service"
)

// App is the interactive review program. Nothing is loaded until Run.
type App struct {
	backend service.Backend
	config  Config
}

// New creates the review program for backend.
func New(backend service.Backend, opts ...Option) (*App, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required: %w", common.ErrMissingConfig)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &App{backend: backend, config: cfg}, nil
}

// Model returns the initial model, for embedding or tests.
func (a *App) Model() Model {
	return newModel(a.backend, a.config)
}

// Run starts the program and blocks until the user quits, ctx is canceled
// or the process is interrupted.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.config.Recorder != nil {
		defer a.config.Recorder.Close()
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	common.LogInfo("Starting review", common.Fields{"theme": a.config.Theme.Name})

	_, err := tea.NewProgram(a.Model(), opts...).Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
