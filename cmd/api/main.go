package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/userstore/internal/api/dto"
	httptransport "github.com/spec-kit/userstore/internal/api/http"
	"github.com/spec-kit/userstore/internal/api/http/handlers"
	"github.com/spec-kit/userstore/internal/auth"
	"github.com/spec-kit/userstore/internal/config"
	"github.com/spec-kit/userstore/internal/events"
	"github.com/spec-kit/userstore/internal/observability"
	"github.com/spec-kit/userstore/internal/persistence"
	"github.com/spec-kit/userstore/internal/repository"
	"github.com/spec-kit/userstore/internal/service"
	"github.com/spec-kit/userstore/internal/storage"
	"github.com/spec-kit/userstore/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := printToken(tokens, os.Args[2:]); err != nil {
			log.Fatalf("failed to issue token: %v", err)
		}
		return
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Configured() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	store, err := storage.Open(cfg.Storage, storage.Backends{
		Postgres: pg.PoolHandle(),
		Redis:    redis.UniversalClient(),
	})
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	logger.Info("storage ready", zap.String("backend", cfg.Storage.Backend))

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()
	notifier := worker.NewNotificationWorker(dispatcher, 128, logger)
	workerCtx, stopWorker := context.WithCancel(ctx)
	notifier.Start(workerCtx)

	userRepo := repository.NewUserRepository(storage.WithMetrics(store, metrics))
	userService := service.NewUserService(userRepo, notifier, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	stopWorker()
	notifier.Wait()
}

// printToken writes a write-scoped operator token as JSON; the optional argument names the operator.
func printToken(tokens *auth.TokenManager, args []string) error {
	operator := "operator"
	if len(args) > 0 && args[0] != "" {
		operator = args[0]
	}
	token, exp, err := tokens.GenerateToken(operator, auth.ScopeWrite)
	if err != nil {
		return err
	}
	out, err := json.Marshal(dto.TokenResponse{Token: token, ExpiresAt: exp})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
