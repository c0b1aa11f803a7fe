package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность внешней зависимости
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc адаптирует функцию к интерфейсу Pinger
type PingFunc func(ctx context.Context) error

// Ping реализует Pinger
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler отвечает на проверки состояния сервиса
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler создает обработчик с именованными проверками (например, "database", "redis")
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health пингует зависимости
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			log.Printf("[HealthHandler] Проверка %s не пройдена: %v", name, err)
			components[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"success":    status == http.StatusOK,
		"status":     state,
		"components": components,
	})
}
