package handler

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-questions-api/internal/middleware"
	"github.com/yourusername/trivia-questions-api/internal/service"
)

// RouterDeps - сервисы и необязательные компоненты, из которых собирается роутер
type RouterDeps struct {
	CategoryService *service.CategoryService
	QuestionService *service.QuestionService
	QuizService     *service.QuizService
	HealthChecks    map[string]Pinger

	// RateLimiter == nil отключает ограничение частоты запросов
	RateLimiter *middleware.RateLimiter
	// AdminTokens == nil оставляет создание и удаление вопросов открытыми
	AdminTokens middleware.AdminTokenParser
}

// RouterConfig - настройки HTTP слоя
type RouterConfig struct {
	APIPrefix      string
	AllowOrigins   []string
	TrustedProxies []string
	WriteLimit     middleware.RateLimitConfig
	GlobalLimit    middleware.RateLimitConfig
}

// NewRouter создает gin.Engine со всеми маршрутами API
func NewRouter(deps RouterDeps, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Logger(), Recovery(), middleware.RequestID())

	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		// Некорректный список прокси: не доверяем никому
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(cors.New(corsConfig(cfg.AllowOrigins)))
	router.NoRoute(NotFound)
	router.NoMethod(MethodNotAllowed)

	categoryHandler := NewCategoryHandler(deps.CategoryService, deps.QuestionService)
	questionHandler := NewQuestionHandler(deps.QuestionService, deps.CategoryService)
	quizHandler := NewQuizHandler(deps.QuizService)
	exportHandler := NewExportHandler(deps.QuestionService, deps.CategoryService)
	healthHandler := NewHealthHandler(deps.HealthChecks)

	router.GET("/health", healthHandler.Health)

	register := func(group *gin.RouterGroup) {
		if deps.RateLimiter != nil && cfg.GlobalLimit.MaxRequests > 0 {
			group.Use(deps.RateLimiter.LimitByIP(cfg.GlobalLimit))
		}

		// Изменяющие маршруты: отдельный лимит и, если включено, токен администратора
		write := []gin.HandlerFunc{}
		if deps.RateLimiter != nil && cfg.WriteLimit.MaxRequests > 0 {
			write = append(write, deps.RateLimiter.Limit(cfg.WriteLimit))
		}
		if deps.AdminTokens != nil {
			write = append(write, middleware.RequireAdmin(deps.AdminTokens))
		}

		group.GET("/categories", categoryHandler.ListCategories)
		group.GET("/categories/:id/questions",
			middleware.ExtractUintParam("id", "categoryID"),
			categoryHandler.GetCategoryQuestions)

		questions := group.Group("/questions")
		{
			questions.GET("", questionHandler.ListQuestions)
			questions.GET("/export", exportHandler.ExportQuestions)
			questions.POST("/search", questionHandler.SearchQuestions)
			questions.POST("", append(write, questionHandler.CreateQuestion)...)
			questions.DELETE("/:id", append(append([]gin.HandlerFunc{
				middleware.ExtractUintParam("id", "questionID"),
			}, write...), questionHandler.DeleteQuestion)...)
		}

		group.POST("/quizzes", quizHandler.NextQuestion)
	}

	register(router.Group(""))
	if prefix := strings.TrimRight(cfg.APIPrefix, "/"); prefix != "" {
		register(router.Group(prefix))
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
