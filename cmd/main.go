package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/Sam-eff/car-rental-site/internal/repositories"
	"github.com/Sam-eff/car-rental-site/internal/services"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/Sam-eff/car-rental-site/internal/stores"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := os.Getenv("RENT_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	config, err := shared.ResolveConfig(configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	shared.SetLogLevel(logger, config.Log.LogLevel())

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}

	httpClient := &http.Client{Timeout: config.API.Timeout()}
	api := services.NewAPIService(config.API.Endpoint(), httpClient)
	api.SetRateLimit(config.API.RateLimit)
	rental := services.NewRentalService(api)

	slots := repositories.NewKVRepository(db)
	provider, err := stores.New(stores.ProviderOpts{
		Slot:   slots,
		Rental: rental,
		Logger: logger,
	})
	if err != nil {
		db.Close()
		logger.Fatalf("failed to initialize stores: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Rental:     rental,
		Provider:   provider,
		Cars:       repositories.NewCarRepository(db),
		Slots:      slots,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:    "rent",
		Usage:   "Browse, compare and save rental cars from the terminal",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				shared.SetLogLevel(logger, log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: runner.register(),
	}

	err = app.Run(context.Background(), os.Args)
	provider.Close()
	db.Close()

	if err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
