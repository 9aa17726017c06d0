package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/emx/internal/services"
	"github.com/desertthunder/emx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	svc        services.EmployeeService
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When Service is nil the runner connects to the remote service named by the loaded config.
type RunnerOpts struct {
	Config     *shared.Config
	Service    services.EmployeeService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config:     opts.Config,
		svc:        opts.Service,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}
}

// SetLogger replaces the logger used by commands and any service the runner builds afterwards.
func (r *Runner) SetLogger(l *log.Logger) { r.logger = l }

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		employeesCommand, tuiCommand, serveCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the config named by --config and connects the employee service.
//
// It runs before every command. An injected service is kept.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config, err := shared.LoadConfigOrDefault(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if url := cmd.String("url"); url != "" {
		config.Remote.BaseURL = url
	}
	r.config = config

	level := config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	ll, err := shared.ParseLogLevel(level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, ll)

	if r.svc == nil {
		r.connect()
	}
	return ctx, nil
}

// connect builds the HTTP client stack for the configured remote service.
func (r *Runner) connect() {
	client := r.httpClient
	if client == nil {
		client = &http.Client{Timeout: r.config.Remote.Timeout()}
	}

	opts := []services.APIOption{
		services.WithRetries(r.config.Remote.Retries),
		services.WithLogger(shared.WithLogger(r.logger, "component", "api")),
	}
	if r.config.Remote.RateLimit > 0 {
		opts = append(opts, services.WithRateLimit(r.config.Remote.RateLimit))
	}

	r.api = services.NewAPIService(r.config.Remote.BaseURL, client, opts...)
	r.svc = services.NewHTTPEmployeeService(r.api)
}

func (r *Runner) service() (services.EmployeeService, error) {
	if r.svc == nil {
		return nil, fmt.Errorf("%w: employee service not initialized", shared.ErrServiceUnavailable)
	}
	return r.svc, nil
}

func parseID(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: employee id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q is not a valid employee id", shared.ErrInvalidArgument, s)
	}
	return id, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
