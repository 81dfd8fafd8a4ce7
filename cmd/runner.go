package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/repositories"
	"github.com/Sam-eff/car-rental-site/internal/services"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/Sam-eff/car-rental-site/internal/stores"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	rental     *services.RentalService
	provider   *stores.Provider
	cars       *repositories.CarRepository
	slots      *repositories.KVRepository
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	startOnce sync.Once
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Rental     *services.RentalService
	Provider   *stores.Provider
	Cars       *repositories.CarRepository
	Slots      *repositories.KVRepository
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		rental:     opts.Rental,
		provider:   opts.Provider,
		cars:       opts.Cars,
		slots:      opts.Slots,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, carsCommand, brandsCommand, bookingsCommand, compareCommand, wishlistCommand, cacheCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// start restores the persisted session once per process.
//
// Only commands that need the session call it, so offline commands never touch the network.
func (r *Runner) start(ctx context.Context) error {
	if r.provider == nil {
		return fmt.Errorf("%w: stores not initialized", shared.ErrServiceUnavailable)
	}
	r.startOnce.Do(func() { r.provider.Start(ctx) })
	return nil
}

func (r *Runner) comparison() (*stores.ComparisonStore, error) {
	if r.provider == nil {
		return nil, fmt.Errorf("%w: stores not initialized", shared.ErrServiceUnavailable)
	}
	return r.provider.Comparison, nil
}

func (r *Runner) requireRental() error {
	if r.rental == nil {
		return fmt.Errorf("%w: rental API not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// requireSession restores the session and fails unless a user is logged in.
func (r *Runner) requireSession(ctx context.Context) error {
	if err := r.requireRental(); err != nil {
		return err
	}
	if err := r.start(ctx); err != nil {
		return err
	}
	if !r.provider.Session.Authenticated() {
		return fmt.Errorf("%w: run 'rent auth login' first", shared.ErrUnauthenticated)
	}
	return nil
}

// report writes a successful Result or converts a failed one into the returned error.
func (r *Runner) report(res models.Result) error {
	if !res.Success {
		return res.AsError()
	}
	return r.writePlain("✓ %s\n", res.Message)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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
