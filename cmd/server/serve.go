package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/promptfolio-backend/internal/ai"
	"github.com/ignatzorin/promptfolio-backend/internal/db"
	"github.com/ignatzorin/promptfolio-backend/internal/github"
	httpHandlers "github.com/ignatzorin/promptfolio-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/promptfolio-backend/internal/http/router"
	"github.com/ignatzorin/promptfolio-backend/internal/logger"
	"github.com/ignatzorin/promptfolio-backend/internal/ratelimit"
	"github.com/ignatzorin/promptfolio-backend/internal/repository"
	"github.com/ignatzorin/promptfolio-backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Error("main: ошибка подключения к базе")
		return err
	}
	defer safeClose(dbConn)

	if cfg.RunMigrations {
		if err := db.RunMigrations(ctx, dbConn); err != nil {
			logger.Log.WithError(err).Error("main: ошибка миграций")
			return err
		}
	}

	// Счётчики rate limit: Redis, если задан, иначе память процесса.
	var rdb *redis.Client
	store := ratelimit.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Log.WithError(err).Error("main: ошибка закрытия redis")
			}
		}()

		store, err = ratelimit.NewRedisStore(rdb)
		if err != nil {
			logger.Log.WithError(err).Error("main: ошибка инициализации redis store")
			return err
		}
	}
	limiter := ratelimit.New(store, cfg.RateLimitLimit, cfg.RateLimitPeriod)

	// Внешние клиенты.
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIModel, cfg.AIAPIKey, cfg.AITimeout)
	if !aiClient.Configured() {
		logger.Log.Warn("main: AI ключ не задан, генерация будет отвечать 500")
	} else {
		logger.Log.WithField("model", aiClient.Model()).Info("main: AI шлюз настроен")
	}
	githubClient := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.GitHubTimeout)
	verifier := service.NewTokenVerifier(cfg.SupabaseJWTSecret, cfg.SupabaseURL, cfg.SupabaseAnonKey, 10*time.Second)

	// Репозитории.
	portfolioRepo := repository.NewPortfolioRepository(dbConn)
	profileRepo := repository.NewProfileRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn)
	storyRepo := repository.NewStoryRepository(dbConn)

	// Сервисы.
	storytellingService := service.NewStorytellingService(aiClient, storyRepo)
	generationService := service.NewPortfolioGenerationService(portfolioRepo, profileRepo, projectRepo, aiClient, cfg.AIJSONMode)
	portfolioService := service.NewPortfolioService(portfolioRepo)
	githubService := service.NewGitHubSyncService(profileRepo, projectRepo, githubClient)

	checks := map[string]httpHandlers.Pinger{"database": dbConn.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Storytelling: httpHandlers.NewStorytellingHandler(storytellingService),
		Portfolio:    httpHandlers.NewPortfolioHandler(generationService, portfolioService),
		GitHub:       httpHandlers.NewGitHubHandler(githubService),
		Health:       httpHandlers.NewHealthHandler(checks),
	}, verifier, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// Завершаем сервер при получении сигнала.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
			return err
		}
		logger.Log.Info("main: HTTP сервер остановлен")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Error("main: сервер завершился с ошибкой")
		return err
	}
	return nil
}
