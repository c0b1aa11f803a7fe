// Package response формирует единое JSON-тело ошибок API.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusMessages - тексты сообщений, которые ожидает веб-клиент
var statusMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "server error",
	http.StatusServiceUnavailable:  "service unavailable",
}

// Message возвращает текст сообщения для HTTP статуса
func Message(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// ErrorBody возвращает тело ошибки {success:false, error:<code>, message:<text>}
func ErrorBody(status int) gin.H {
	return gin.H{
		"success": false,
		"error":   status,
		"message": Message(status),
	}
}

// AbortWithError прерывает цепочку обработчиков и отправляет тело ошибки
func AbortWithError(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, ErrorBody(status))
}
