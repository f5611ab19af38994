package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivery-service/cmd"
	nsqout "delivery-service/internal/adapters/out/nsq"
	"delivery-service/internal/adapters/out/postgres"
	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/metrics"
	"delivery-service/internal/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const (
	serviceName     = "delivery-service"
	shutdownTimeout = 15 * time.Second
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "delivery",
		Short:         "Delivery service: tracks deliveries from packaging to the customer's door",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (env variables take precedence)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, message consumers and delivery process",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := openDatabase(c.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeDatabase(db, logger)

			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("schema is up to date")
			return nil
		},
	})

	return root
}

func setup() (cmd.Config, *slog.Logger, error) {
	cfg, err := cmd.LoadConfig(viper.New(), cfgFile)
	if err != nil {
		return cmd.Config{}, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func serve(ctx context.Context, cfg cmd.Config, logger *slog.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.MustRegister(registry)

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(db, logger)

	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	publisher, err := nsqout.NewPublisher(cfg.NsqdTCPAddr, logger)
	if err != nil {
		return fmt.Errorf("create nsq producer: %w", err)
	}
	defer publisher.Stop()
	if err = publisher.Connect(ctx, cfg.StartupRetryAttempts, cfg.StartupRetryDelay); err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(cfg, db, publisher, logger)

	refreshPublicKey(ctx, app, logger)

	consumers := app.CreateConsumers()
	if err = consumers.Start(ctx); err != nil {
		return fmt.Errorf("start consumers: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		consumers.Stop()
		return fmt.Errorf("start jobs: %w", err)
	}

	e, err := app.CreateRouter(registry)
	if err != nil {
		consumers.Stop()
		return fmt.Errorf("build router: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", cfg.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-serverErr:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("http server shutdown failed", "error", shutdownErr)
	}
	consumers.Stop()
	if stopErr := jobManager.StopAll(shutdownCtx); stopErr != nil {
		logger.Error("jobs did not stop in time", "error", stopErr)
	}

	return err
}

// refreshPublicKey loads the signing key at startup. Without it secured
// routes answer 503, so on failure the auth service is asked to announce
// its key again.
func refreshPublicKey(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) {
	handler := app.CreateRefreshPublicKeyCommandHandler()
	refresh, err := commands.NewRefreshPublicKeyCommand(commands.PublicKeyAvailable)
	if err != nil {
		logger.Error("invalid refresh command", "error", err)
		return
	}

	if err = handler.Handle(ctx, refresh); err != nil {
		logger.WarnContext(ctx, "public key is not available yet", "error", err)
		app.Notifier().RequestKeyRefresh(ctx)
		return
	}
	logger.InfoContext(ctx, "public key loaded")
}

func openDatabase(ctx context.Context, cfg cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	return postgres.Open(ctx, postgres.ConnectionConfig{
		Host:          cfg.DBHost,
		Port:          cfg.DBPort,
		User:          cfg.DBUser,
		Password:      cfg.DBPassword,
		Name:          cfg.DBName,
		SSLMode:       cfg.DBSslMode,
		RetryAttempts: cfg.StartupRetryAttempts,
		RetryDelay:    cfg.StartupRetryDelay,
	}, logger)
}

func closeDatabase(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}
