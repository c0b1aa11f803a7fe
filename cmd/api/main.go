package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/yourusername/trivia-questions-api/internal/config"
	"github.com/yourusername/trivia-questions-api/internal/domain/repository"
	"github.com/yourusername/trivia-questions-api/internal/handler"
	"github.com/yourusername/trivia-questions-api/internal/middleware"
	pgRepo "github.com/yourusername/trivia-questions-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/trivia-questions-api/internal/repository/redis"
	"github.com/yourusername/trivia-questions-api/internal/service"
	"github.com/yourusername/trivia-questions-api/pkg/auth"
	"github.com/yourusername/trivia-questions-api/pkg/database"
)

func main() {
	config.LoadDotEnv(".env")

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Database.LogLevel)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	sqlDB, err := database.GetSQLDB(db)
	if err != nil {
		log.Printf("Failed to get sql.DB: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	healthChecks := map[string]handler.Pinger{
		"database": handler.PingFunc(sqlDB.PingContext),
	}

	// Redis необязателен: без него кеш категорий и rate limiting отключены
	var (
		cacheRepo   repository.CacheRepository = redisRepo.NoOpCache{}
		rateLimiter *middleware.RateLimiter
		redisClient redis.UniversalClient
	)
	if cfg.Redis.Enabled {
		redisClient, err = database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Println("Successfully connected to Redis")

		redisCache, err := redisRepo.NewCacheRepo(redisClient, cfg.Cache.Prefix)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = redisCache
		healthChecks["redis"] = redisCache

		if cfg.RateLimit.Enabled {
			rateLimiter = middleware.NewRateLimiter(redisClient)
		}
	} else {
		log.Println("Redis отключен: кеш категорий и ограничение частоты запросов не используются")
	}

	// Инициализируем репозитории
	categoryRepo := pgRepo.NewCategoryRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)

	// Инициализируем сервисы
	categoryService := service.NewCategoryService(categoryRepo, cacheRepo, cfg.Cache.TTL)
	questionService := service.NewQuestionService(questionRepo, categoryRepo)
	quizService := service.NewQuizService(questionRepo)

	// Категории могли измениться миграциями
	if err := categoryService.InvalidateCache(ctx); err != nil {
		log.Printf("Warning: failed to invalidate categories cache: %v", err)
	}

	// Периодическое обновление кеша категорий имеет смысл только с Redis
	if cfg.Redis.Enabled && cfg.Cache.RefreshSpec != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.Cache.RefreshSpec, func() {
			if err := categoryService.RefreshCache(ctx); err != nil {
				log.Printf("[Cron] Не удалось обновить кеш категорий: %v", err)
			}
		}); err != nil {
			log.Printf("Failed to schedule categories cache refresh (%s): %v", cfg.Cache.RefreshSpec, err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("Обновление кеша категорий запланировано: %s", cfg.Cache.RefreshSpec)
	}

	deps := handler.RouterDeps{
		CategoryService: categoryService,
		QuestionService: questionService,
		QuizService:     quizService,
		HealthChecks:    healthChecks,
		RateLimiter:     rateLimiter,
	}
	if cfg.Auth.Enabled {
		tokenService, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			log.Printf("Failed to initialize TokenService: %v", err)
			os.Exit(1)
		}
		deps.AdminTokens = tokenService
		log.Println("Создание и удаление вопросов требуют токен администратора")
	}

	router := handler.NewRouter(deps, handler.RouterConfig{
		APIPrefix:      cfg.Server.APIPrefix,
		AllowOrigins:   cfg.CORS.AllowOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		WriteLimit: middleware.RateLimitConfig{
			MaxRequests: cfg.RateLimit.WriteMax,
			Window:      cfg.RateLimit.WriteWindow,
			KeyPrefix:   cfg.Cache.Prefix + ":rl:write",
		},
		GlobalLimit: middleware.RateLimitConfig{
			MaxRequests: cfg.RateLimit.GlobalMax,
			Window:      cfg.RateLimit.GlobalWindow,
			KeyPrefix:   cfg.Cache.Prefix + ":rl:global",
		},
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
