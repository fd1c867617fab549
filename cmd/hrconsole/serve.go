package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/access"
	httptransport "github.com/spec-kit/hr-console/internal/api/http"
	"github.com/spec-kit/hr-console/internal/api/http/handlers"
	"github.com/spec-kit/hr-console/internal/config"
	"github.com/spec-kit/hr-console/internal/events"
	"github.com/spec-kit/hr-console/internal/hrapi"
	"github.com/spec-kit/hr-console/internal/observability"
	"github.com/spec-kit/hr-console/internal/persistence"
	"github.com/spec-kit/hr-console/internal/repository"
	"github.com/spec-kit/hr-console/internal/service"
	"github.com/spec-kit/hr-console/internal/session"
	"github.com/spec-kit/hr-console/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the console gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer pg.Close()

	if pg.Configured() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var redis *persistence.Redis
	if cfg.Session.Store == config.SessionStoreRedis {
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
	}

	store, err := newSessionStore(cfg, pg, redis)
	if err != nil {
		return err
	}
	codec, err := session.NewCodec(cfg.Session.Secret)
	if err != nil {
		return fmt.Errorf("failed to init session codec: %w", err)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	sessions := session.NewManager(store, codec, session.Options{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
		TTL:        cfg.Session.TTL(),
	}, dispatcher, logger)

	client, err := hrapi.NewClient(cfg.HRAPI.BaseURL, cfg.HRAPI.Timeout(), metrics, logger)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(*cfg, client)
	consoleService := service.NewConsoleService(client)
	auditService := service.NewAuditService(dispatcher, metrics, logger, cfg.Audit)
	worker.StartAuditWorker(ctx, auditService)
	go worker.RunSessionJanitor(ctx, store, cfg.Session.PurgeInterval(), logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), sessions)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store.Name(), map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:       handlers.NewAuthHandler(authService, sessions, logger),
		Console:    handlers.NewConsoleHandler(consoleService, sessions, logger),
		Pages:      handlers.NewPageHandler(sessions),
		Proxy:      handlers.NewProxyHandler(client),
		Guard:      access.NewGuard(sessions, metrics, logger),
		Metrics:    metrics,
		LoginLimit: httptransport.LoginRateLimiter(cfg.RateLimit.LoginPerMinute, metrics),
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("console gateway listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("session_store", store.Name()),
			zap.String("hr_api", cfg.HRAPI.BaseURL))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	return nil
}

func newSessionStore(cfg *config.Config, pg *persistence.Postgres, redis *persistence.Redis) (session.Store, error) {
	switch cfg.Session.Store {
	case config.SessionStoreCookie:
		return session.NewCookieStore(), nil
	case config.SessionStoreMemory:
		return session.NewMemoryStore(), nil
	case config.SessionStoreRedis:
		if !redis.Configured() {
			return nil, errors.New("redis session store requires a redis client")
		}
		return repository.NewSessionCache(redis.Client), nil
	case config.SessionStorePostgres:
		if !pg.Configured() {
			return nil, errors.New("postgres session store requires POSTGRES_DSN")
		}
		return repository.NewSessionRepository(pg.PoolHandle()), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
