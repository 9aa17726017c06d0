package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/emx/internal/shared"
	"github.com/desertthunder/emx/internal/tasks"
	"github.com/desertthunder/emx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive roster.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.service(); err != nil {
		return err
	}
	order, err := r.sortOrder("")
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)
	if r.api != nil {
		r.connect()
	}

	feed := ui.NewStateFeed()
	ctrl := tasks.NewController(tasks.Options{
		Service:  r.svc,
		Logger:   shared.WithLogger(fileLogger, "component", "controller"),
		PageSize: r.config.View.PageSize,
		Order:    order,
		OnChange: feed.Publish,
	})

	model := ui.NewModel(ctx, ctrl, fileLogger).Listen(feed)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
