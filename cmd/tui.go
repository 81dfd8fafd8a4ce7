package main

import (
	"context"
	"fmt"

	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/Sam-eff/car-rental-site/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and comparing cars.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRental(); err != nil {
		return err
	}
	if err := r.start(ctx); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.TUIFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, ui.Opts{
		Catalog:  r.rental,
		Provider: r.provider,
		BaseURL:  r.config.API.BaseURL,
		Logger:   fileLogger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
