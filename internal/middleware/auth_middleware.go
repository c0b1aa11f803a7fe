package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-questions-api/internal/pkg/response"
	"github.com/yourusername/trivia-questions-api/pkg/auth"
)

// AdminTokenParser проверяет токен администратора
type AdminTokenParser interface {
	ParseAdminToken(tokenString string) (*auth.AdminClaims, error)
}

// RequireAdmin проверяет заголовок Authorization: Bearer {token} для изменяющих маршрутов
func RequireAdmin(parser AdminTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, http.StatusUnauthorized)
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortWithError(c, http.StatusUnauthorized)
			return
		}

		claims, err := parser.ParseAdminToken(parts[1])
		if err != nil {
			log.Printf("[AuthMiddleware] Отклонен токен для %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			response.AbortWithError(c, http.StatusUnauthorized)
			return
		}

		c.Set("admin_subject", claims.Subject)
		c.Next()
	}
}
