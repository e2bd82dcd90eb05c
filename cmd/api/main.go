package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/pastor-mobile/church-admin-service/internal/api/http"
	"github.com/pastor-mobile/church-admin-service/internal/api/http/handlers"
	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/config"
	"github.com/pastor-mobile/church-admin-service/internal/events"
	"github.com/pastor-mobile/church-admin-service/internal/mail"
	"github.com/pastor-mobile/church-admin-service/internal/observability"
	"github.com/pastor-mobile/church-admin-service/internal/persistence"
	"github.com/pastor-mobile/church-admin-service/internal/repository"
	"github.com/pastor-mobile/church-admin-service/internal/service"
	"github.com/pastor-mobile/church-admin-service/internal/worker"
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

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	managedUserRepo := repository.NewManagedUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool, redis.ClientHandle())
	sermonRepo := repository.NewSermonRepository(pool)
	seriesRepo := repository.NewSeriesRepository(pool)
	devotionalRepo := repository.NewDevotionalRepository(pool)

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewSMTPMailer(cfg.SMTP, logger, metrics)
	notificationService := service.NewNotificationService(dispatcher, mailer, logger)
	worker.StartNotificationWorker(notificationService)
	worker.StartOTPSweeper(ctx, userRepo, cfg.Auth.OTPValidity(), logger)

	authService := service.NewAuthService(cfg.Auth, tokens, service.AuthDependencies{
		UserRepo:        userRepo,
		ManagedUserRepo: managedUserRepo,
		RoleRepo:        roleRepo,
	}, dispatcher, logger)
	adminService := service.NewAdminService(cfg.Auth, userRepo, managedUserRepo, dispatcher, logger)
	directoryService := service.NewDirectoryService(cfg.Auth, managedUserRepo, userRepo, roleRepo, dispatcher, logger)
	contentService := service.NewContentService(sermonRepo, seriesRepo, devotionalRepo, logger)

	if err := authService.EnsureSuperadmin(ctx); err != nil {
		logger.Fatal("failed to bootstrap superadmin", zap.Error(err))
	}

	authMiddleware := auth.NewMiddleware(tokens, authService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Admins:         handlers.NewAdminsHandler(adminService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		Sermons:        handlers.NewSermonsHandler(contentService),
		Series:         handlers.NewSeriesHandler(contentService),
		Devotionals:    handlers.NewDevotionalsHandler(contentService),
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
