package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/token-gate/internal/api/http"
	"github.com/spec-kit/token-gate/internal/api/http/handlers"
	"github.com/spec-kit/token-gate/internal/auth"
	"github.com/spec-kit/token-gate/internal/config"
	"github.com/spec-kit/token-gate/internal/domain"
	"github.com/spec-kit/token-gate/internal/observability"
	"github.com/spec-kit/token-gate/internal/persistence"
	"github.com/spec-kit/token-gate/internal/repository"
	"github.com/spec-kit/token-gate/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	signing, err := auth.NewSigningConfig(cfg.Auth.JWTSecret, cfg.Auth.Expiry, cfg.Auth.ExpiryUnit)
	if err != nil {
		logger.Fatal("invalid signing configuration", zap.Error(err))
	}
	tokens, err := auth.NewTokenManager(signing)
	if err != nil {
		logger.Fatal("failed to build token manager", zap.Error(err))
	}
	logger.Info("token signing configured",
		zap.String("algorithm", auth.SigningMethod.Alg()),
		zap.Int64("expiry_seconds", signing.ExpiryInSeconds()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	userRepo := repository.NewUserRepository(pg.PoolHandle())
	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost, logger)
	if cfg.Auth.Bootstrap.Enabled() {
		if pg.PoolHandle() == nil {
			logger.Warn("bootstrap user skipped: no database configured")
		} else if _, err := authService.EnsureUser(ctx, service.BootstrapUser{
			Username: cfg.Auth.Bootstrap.Username,
			Password: cfg.Auth.Bootstrap.Password,
			Roles:    cfg.Auth.Bootstrap.Roles,
		}); err != nil {
			logger.Fatal("failed to create bootstrap user", zap.Error(err))
		}
	}
	authMiddleware := auth.NewAuthMiddleware[domain.UserIdentity](tokens, logger, metrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.NewErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
