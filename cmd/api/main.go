package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/docket-service/internal/api/http"
	"github.com/spec-kit/docket-service/internal/api/http/handlers"
	"github.com/spec-kit/docket-service/internal/auth"
	"github.com/spec-kit/docket-service/internal/config"
	"github.com/spec-kit/docket-service/internal/events"
	"github.com/spec-kit/docket-service/internal/observability"
	"github.com/spec-kit/docket-service/internal/persistence"
	"github.com/spec-kit/docket-service/internal/render"
	"github.com/spec-kit/docket-service/internal/repository"
	"github.com/spec-kit/docket-service/internal/service"
	"github.com/spec-kit/docket-service/internal/settings"
	"github.com/spec-kit/docket-service/internal/worker"
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

	pool := pg.PoolHandle()
	studentRepo := repository.NewStudentRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	clearanceRepo := repository.NewClearanceRepository(pool)
	docketRepo := repository.NewDocketRepository(pool)
	tokenKeyRepo := repository.NewTokenKeyRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	var documents settings.DocumentStore
	if cfg.Docket.DocumentBackend == "redis" {
		documents = settings.NewRedisStore(redis.Client, cfg.App.Name)
	} else {
		documents = settings.NewFileStore(cfg.Docket.DocumentDir)
	}
	settingsStore := settings.NewExamSettingsStore(documents, logger)
	blocklist := settings.NewBlocklistStore(documents)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StudentRepo: studentRepo,
		AdminRepo:   adminRepo,
	})
	docketService := service.NewDocketService(service.DocketDependencies{
		StudentRepo:   studentRepo,
		ClearanceRepo: clearanceRepo,
		DocketRepo:    docketRepo,
		TokenKeyRepo:  tokenKeyRepo,
		Blocklist:     blocklist,
		Renderer:      render.NewDocketRenderer(cfg.Docket.InstitutionName, cfg.Docket.LogoPath),
		Dispatcher:    dispatcher,
	})
	adminService := service.NewAdminService(settingsStore, blocklist, dispatcher)
	paymentService := service.NewPaymentService(studentRepo, paymentRepo, dispatcher)

	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), cfg.Auth.CookieName)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, cfg.App, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth.CookieName),
		Dockets:        handlers.NewDocketsHandler(docketService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Admin:          handlers.NewAdminHandler(adminService),
		Verification:   handlers.NewVerificationHandler(docketService),
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
