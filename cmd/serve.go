package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/emx/internal/repositories"
	"github.com/desertthunder/emx/internal/server"
	"github.com/desertthunder/emx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the sandbox employee service until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	dbConfig := r.config.Database
	if path := cmd.String("db"); path != "" {
		dbConfig.Path = path
	}
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	db, err := shared.OpenSandboxDatabase(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := repositories.NewEmployeeRepository(db)
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count employees: %w", err)
	}

	logger := shared.WithLogger(r.logger, "component", "server")
	logger.Info("database ready", "path", dbConfig.Path, "employees", count)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("Serving employees on http://%s/api/Employees (ctrl+c to stop)\n", addr)
	return server.ListenAndServe(ctx, addr, server.NewSandboxRouter(repo, logger), logger, nil)
}
