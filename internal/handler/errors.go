package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yourusername/trivia-questions-api/internal/middleware"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
	"github.com/yourusername/trivia-questions-api/internal/pkg/response"
)

// respondError преобразует ошибку сервиса в HTTP статус и единое тело ошибки
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		response.AbortWithError(c, http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrNotFound):
		response.AbortWithError(c, http.StatusNotFound)
	case errors.Is(err, apperrors.ErrUnprocessable), errors.Is(err, apperrors.ErrValidation):
		response.AbortWithError(c, http.StatusUnprocessableEntity)
	default:
		log.Printf("ERROR: Internal server error [%s] %s %s: %v",
			c.GetString(middleware.RequestIDKey), c.Request.Method, c.Request.URL.Path, err)
		response.AbortWithError(c, http.StatusInternalServerError)
	}
}

// bindJSON разбирает тело запроса в obj и проверяет теги binding.
// Тело, не являющееся JSON объектом, и отсутствующее обязательное поле - ErrBadRequest;
// поле, которое не удалось преобразовать, - ErrValidation.
func bindJSON(c *gin.Context, obj interface{}) error {
	body, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: request body must be a JSON object", apperrors.ErrBadRequest)
	}

	if err := binding.JSON.BindBody(trimmed, obj); err != nil {
		var typeErr *json.UnmarshalTypeError
		var fieldErrs validator.ValidationErrors
		switch {
		case errors.As(err, &fieldErrs):
			return fmt.Errorf("%w: missing required field %s", apperrors.ErrBadRequest, fieldErrs[0].Field())
		case errors.Is(err, apperrors.ErrValidation):
			return err
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return fmt.Errorf("%w: field %s: %v", apperrors.ErrValidation, typeErr.Field, err)
		default:
			return fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
		}
	}
	return nil
}

// NotFound отвечает на запрос к несуществующему маршруту
func NotFound(c *gin.Context) {
	response.AbortWithError(c, http.StatusNotFound)
}

// MethodNotAllowed отвечает на запрос с методом, не определенным для маршрута
func MethodNotAllowed(c *gin.Context) {
	response.AbortWithError(c, http.StatusMethodNotAllowed)
}

// Recovery перехватывает панику обработчика и отвечает 500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[Recovery] Паника при обработке [%s] %s %s: %v",
			c.GetString(middleware.RequestIDKey), c.Request.Method, c.Request.URL.Path, recovered)
		response.AbortWithError(c, http.StatusInternalServerError)
	})
}
