package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/emx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

// app builds the root command. Global flags are read by every subcommand.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "emx",
		Usage:   "Browse and manage the employee roster",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars("EMX_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "url",
				Usage:   "Employee service base URL (overrides remote.base_url)",
				Sources: cli.EnvVars("EMX_URL"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}
