package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/career-compass/internal/ai"
	httptransport "github.com/spec-kit/career-compass/internal/api/http"
	"github.com/spec-kit/career-compass/internal/api/http/handlers"
	"github.com/spec-kit/career-compass/internal/auth"
	"github.com/spec-kit/career-compass/internal/config"
	"github.com/spec-kit/career-compass/internal/observability"
	"github.com/spec-kit/career-compass/internal/persistence"
	"github.com/spec-kit/career-compass/internal/repository"
	"github.com/spec-kit/career-compass/internal/service"
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
	jobRepo := repository.NewJobRepository(pool)
	resumeRepo := repository.NewResumeRepository(pool)
	letterRepo := repository.NewCoverLetterRepository(pool)

	revocation := auth.NewRevocationList(redis.Client, logger)
	cookies := auth.NewCookieWriter(cfg.Auth)
	csrfIssuer := auth.NewCSRFIssuer()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Revocation: revocation,
	})
	jobService := service.NewJobService(jobRepo)
	documentService := service.NewDocumentService(resumeRepo, letterRepo, jobRepo)

	aiClient := ai.NewClient(cfg.AI)
	aiService := service.NewAIService(aiClient, documentService, jobService, logger)

	verifier := auth.NewVerifier(authService.Codec())
	sessionMiddleware := auth.NewSessionMiddleware(verifier, revocation, cookies, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(pg, redis),
		Auth:              handlers.NewAuthHandler(authService, csrfIssuer, cookies),
		Jobs:              handlers.NewJobsHandler(jobService),
		Resumes:           handlers.NewResumesHandler(documentService),
		CoverLetters:      handlers.NewCoverLettersHandler(documentService),
		AI:                handlers.NewAIHandler(aiService, authService),
		Admin:             handlers.NewAdminHandler(metrics),
		SessionMiddleware: sessionMiddleware,
		Cookies:           cookies,
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
