package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"legolelo/internal/app"
	"legolelo/internal/config"
	"legolelo/internal/database"
	"legolelo/internal/logging"
	"legolelo/internal/repositories"
	"legolelo/internal/services"
	"legolelo/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// sub-command starts the server.
func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	serve := func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	}

	root := &cobra.Command{
		Use:          "legolelo",
		Short:        "Toy catalog HTTP service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config.LoadDotEnv(".env")
			return config.BindFlags(v, cmd.Flags())
		},
		RunE: serve,
	}

	flags := root.PersistentFlags()
	flags.String("app-port", ":5000", "address the HTTP server listens on")
	flags.String("store-driver", config.DriverMemory, "store backend: memory, mongo, postgres or sqlite")
	flags.String("database-dsn", "file:legolelo.db?_journal_mode=WAL&_busy_timeout=5000", "DSN for the postgres and sqlite drivers")
	flags.String("mongo-uri", "", "MongoDB connection string (built from DB_USER/DB_PASS/MONGO_HOST when empty)")
	flags.String("rabbitmq-url", "", "AMQP URL for catalog events; empty disables them")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("log-format", "text", "text or json")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  serve,
	})
	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Insert the demo toys into the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	})
	return root
}

// openStore connects the repository selected by cfg. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (repositories.ToyRepository, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoTimeout)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewMongoToyRepository(client, cfg.MongoDatabase, cfg.MongoCollection)
		return repo, func() error { return client.Disconnect(context.Background()) }, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenGORM(cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewGORMToyRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			database.CloseGORM(db)
			return nil, nil, err
		}
		return repo, func() error { return database.CloseGORM(db) }, nil

	default:
		return repositories.NewMockToyRepository(), func() error { return nil }, nil
	}
}

func runServer(parent context.Context, cfg *config.Config) error {
	log := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Initialize Store ---
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn(context.Background(), "error closing store", "error", err)
		}
	}()
	log.Info(ctx, "store ready", "driver", cfg.StoreDriver)

	if cfg.SeedDemoData {
		if err := seedIfEmpty(ctx, repo, log); err != nil {
			return err
		}
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: services.EventsExchange})
		if err != nil {
			return err
		}
		defer mqClient.Close()
		events = mqClient

		err = mqClient.ConsumeToyEvents(func(msg amqp.Delivery) error {
			log.Info(context.Background(), "catalog event", "routing_key", msg.RoutingKey, "body", string(msg.Body))
			return nil
		})
		if err != nil {
			log.Warn(ctx, "failed to start catalog event consumer", "error", err)
		}
	}

	service := services.NewToyService(repo, events, log)
	fiberApp := app.New(app.Options{
		Service:          service,
		Logger:           log,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	// --- Start HTTP Server ---
	listenErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting server", "addr", cfg.AppPort)
		listenErr <- fiberApp.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down server")
	if err := fiberApp.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Warn(context.Background(), "error during Fiber shutdown", "error", err)
	}
	log.Info(context.Background(), "server gracefully stopped")
	return nil
}
