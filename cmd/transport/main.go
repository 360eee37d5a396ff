package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/transport/internal/transport/config"
	"github.com/gartstein/transport/internal/transport/controller"
	"github.com/gartstein/transport/internal/transport/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every subcommand needs once the root command has run.
type app struct {
	logger     *zap.Logger
	store      *db.Store
	companies  *controller.CompanyService
	employees  *controller.EmployeeService
	transports *controller.TransportService
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var a app
	err := newRootCmd(&a).ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(1)
	}
}

// close releases the store and flushes the logger. It runs whether or not
// the command succeeded, and is safe when the root command never ran.
func (a *app) close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "transport",
		Short:        "Reports over the transport company database",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a.logger, err = initLogger(cfg.Log)
			if err != nil {
				return err
			}
			a.store, err = db.OpenWithRetry(cmd.Context(), cfg.Database.DB(), a.logger, startupBackoff())
			if err != nil {
				a.logger.Error("failed to initialize database", zap.Error(err))
				return err
			}
			initServices(a)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("TRANSPORT_CONFIG"),
		"path to the YAML config file (environment variables override it)")
	cmd.AddCommand(reportCmd(a), listCmd(a))
	return cmd
}

func initServices(a *app) {
	companies := db.NewCompanyRepository(a.store)
	clients := db.NewClientRepository(a.store)
	vehicles := db.NewVehicleRepository(a.store)
	employees := db.NewEmployeeRepository(a.store)
	transports := db.NewTransportRepository(a.store)

	a.companies = controller.NewCompanyService(companies, a.logger)
	a.employees = controller.NewEmployeeService(employees, companies, a.logger)
	a.transports = controller.NewTransportService(transports, companies, clients, vehicles, employees, a.logger)
}

// initLogger builds a zap logger for the configured mode and level.
func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Mode == "development" {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zcfg.Level = level
	return zcfg.Build()
}

// startupBackoff waits for a database that is still starting.
func startupBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	return b
}
