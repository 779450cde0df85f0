package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/FFMGAMER/FFM-Gen-Bot/internal/api/http"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/api/http/handlers"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/auth"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/bot"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/config"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/events"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/observability"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/persistence"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/repository"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/service"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := persistence.InitDataDir(cfg.Storage.DataDir); err != nil {
		logger.Fatal("failed to init data dir", zap.Error(err))
	}

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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	entitlementRepo := repository.NewEntitlementRepository(cfg.Storage.DataDir)
	cooldownRepo := repository.NewCooldownRepository(cfg.Storage.DataDir)
	inventoryRepo := repository.NewInventoryRepository(cfg.Storage.DataDir,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	auditRepo := repository.NewAuditRepository(pg.PoolHandle())

	worker.StartAuditWorker(dispatcher, auditRepo, logger)

	accountService := service.NewAccountService(service.AccountDependencies{
		EntitlementRepo: entitlementRepo,
		CooldownRepo:    cooldownRepo,
		InventoryRepo:   inventoryRepo,
		Dispatcher:      dispatcher,
		Cache:           redis,
		Metrics:         metrics,
		Logger:          logger,
	})
	authService := service.NewAuthService(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Admin:          handlers.NewAdminHandler(accountService, auditRepo, cfg.Restock.MaxFileBytes),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	var gateway *bot.Bot
	if cfg.Discord.Enabled {
		gateway, err = bot.New(*cfg, accountService, logger)
		if err != nil {
			logger.Fatal("failed to build discord adapter", zap.Error(err))
		}
		if err := gateway.Start(); err != nil {
			logger.Fatal("failed to open discord gateway", zap.Error(err))
		}
	} else {
		logger.Info("discord adapter disabled")
	}

	waitForShutdown(logger)

	if gateway != nil {
		gateway.Stop()
	}
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
