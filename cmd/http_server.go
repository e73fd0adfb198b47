package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/auth"
	"github.com/rahayucraft/studio-management/internal/blog"
	"github.com/rahayucraft/studio-management/internal/catalog"
	"github.com/rahayucraft/studio-management/internal/core/events"
	"github.com/rahayucraft/studio-management/internal/employees"
	"github.com/rahayucraft/studio-management/internal/mailer"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/orders"
	"github.com/rahayucraft/studio-management/internal/quotes"
	"github.com/rahayucraft/studio-management/internal/returns"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/storage/memory"
	"github.com/rahayucraft/studio-management/internal/storage/postgreskv"
	"github.com/rahayucraft/studio-management/internal/storage/rediskv"
	"github.com/rahayucraft/studio-management/internal/storage/sqlitekv"
	"github.com/rahayucraft/studio-management/internal/store"
	"github.com/rahayucraft/studio-management/internal/transport"
	"github.com/rahayucraft/studio-management/internal/transport/rest"
	"github.com/rahayucraft/studio-management/internal/users"
	"github.com/rahayucraft/studio-management/internal/workshops"
	"github.com/rahayucraft/studio-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	Repo   storage.Repository
	Store  *store.Store
	Bus    *events.EventBus
	Mailer mailer.Sender
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "storage_driver", deps.Config.Storage.Driver)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.Mailer.Shutdown()
		flushCtx, flushCancel := internal.WithTimeout(context.Background(), 10*time.Second)
		deps.Store.PersistAll(flushCtx)
		flushCancel()
		if err := deps.Repo.Close(); err != nil {
			deps.Logger.Error("Storage close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	env := os.Getenv("APP_ENV")
	if config.Observability.Logging.Format == "json" {
		env = "production"
	}
	logger.Init(env, config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	repo, err := initRepository(config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var storeOpts []store.Option
	if config.Observability.Metrics.Enabled {
		storeOpts = append(storeOpts, store.WithMetrics(store.NewMetrics(prometheus.DefaultRegisterer)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	domainStore, err := store.New(ctx, repo, lg, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate domain store: %w", err)
	}

	bus := events.NewEventBus(lg)

	var sender mailer.Sender
	if config.Mailer.Enabled {
		sender = mailer.NewClient(config.Mailer, lg)
	} else {
		sender = &mailer.NoopSender{Logger: lg}
	}
	mailer.NewEventHandler(sender, lg).RegisterEventHandlers(bus)

	tokenGen := auth.NewJWTTokenGenerator(config.Security)
	authService := auth.NewService(domainStore, tokenGen, config.Security.BCryptCost, lg)

	base := transport.NewBaseHandler(lg)

	handlers := rest.Handlers{
		Auth:          auth.NewHandler(base, authService),
		Users:         users.NewHandler(base, users.NewService(domainStore, lg)),
		Employees:     employees.NewHandler(base, employees.NewService(domainStore, lg)),
		Catalog:       catalog.NewHandler(base, catalog.NewService(domainStore, lg)),
		Workshops:     workshops.NewHandler(base, workshops.NewService(domainStore, lg)),
		Orders:        orders.NewHandler(base, orders.NewService(domainStore, lg)),
		Quotes:        quotes.NewHandler(base, quotes.NewService(domainStore, lg)),
		Returns:       returns.NewHandler(base, returns.NewService(domainStore, bus, lg)),
		Blog:          blog.NewHandler(base, blog.NewService(domainStore, lg)),
		Notifications: notifications.NewHandler(base, notifications.NewService(domainStore, lg)),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, config, domainStore, repo, authService, handlers, lg)

	return &Dependencies{
		Config: config,
		Repo:   repo,
		Store:  domainStore,
		Bus:    bus,
		Mailer: sender,
		Router: router,
		Logger: lg,
	}, nil
}

// initRepository selects the durable key-value backend for the store.
func initRepository(cfg internal.StorageConfig) (storage.Repository, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		return sqlitekv.New(cfg.SQLitePath)
	case "postgres":
		return postgreskv.New(cfg.PostgresDSN)
	case "redis":
		return rediskv.New(cfg.RedisAddr, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
