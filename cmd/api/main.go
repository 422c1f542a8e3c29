package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/hirebridge/placement-service/internal/api/http"
	"github.com/hirebridge/placement-service/internal/api/http/handlers"
	"github.com/hirebridge/placement-service/internal/auth"
	"github.com/hirebridge/placement-service/internal/config"
	"github.com/hirebridge/placement-service/internal/events"
	"github.com/hirebridge/placement-service/internal/observability"
	"github.com/hirebridge/placement-service/internal/persistence"
	"github.com/hirebridge/placement-service/internal/repository"
	"github.com/hirebridge/placement-service/internal/service"
	"github.com/hirebridge/placement-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	partnerRepo := repository.NewPartnerRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	candidateRepo := repository.NewCandidateRepository(pool)
	payoutRepo := repository.NewPayoutRepository(pool)
	txManager := persistence.NewTxManager(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, partnerRepo, companyRepo)

	candidateService := service.NewCandidateService(service.CandidateDependencies{
		CandidateRepo:      candidateRepo,
		JobRepo:            jobRepo,
		PartnerRepo:        partnerRepo,
		CompanyRepo:        companyRepo,
		PayoutRepo:         payoutRepo,
		TxManager:          txManager,
		Dispatcher:         dispatcher,
		TDSPercent:         cfg.Commission.TDSPercent,
		PlatformFeePercent: cfg.Commission.PlatformFeePercent,
	})
	payoutService := service.NewPayoutService(service.PayoutDependencies{
		PayoutRepo:    payoutRepo,
		PartnerRepo:   partnerRepo,
		CandidateRepo: candidateRepo,
		TxManager:     txManager,
		Dispatcher:    dispatcher,
	})
	jobService := service.NewJobService(jobRepo, companyRepo, txManager, redis)
	notificationService := service.NewNotificationService(dispatcher, logger, redis, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Partner:        handlers.NewPartnerHandler(candidateService, jobService, payoutService),
		Company:        handlers.NewCompanyHandler(candidateService, jobService),
		Admin:          handlers.NewAdminHandler(candidateService, payoutService),
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
