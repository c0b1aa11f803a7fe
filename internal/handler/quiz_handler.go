package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-questions-api/internal/handler/dto"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
	"github.com/yourusername/trivia-questions-api/internal/service"
)

// QuizHandler обрабатывает запросы игры
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик игры
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// NextQuestion возвращает случайный еще не заданный вопрос или null, если вопросы закончились
// POST /quizzes
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	var req dto.QuizRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	if req.QuizCategory.IsEmpty() {
		respondError(c, fmt.Errorf("%w: quiz_category is required", apperrors.ErrBadRequest))
		return
	}

	categoryID, err := req.CategoryID()
	if err != nil {
		respondError(c, err)
		return
	}

	question, err := h.quizService.NextQuestion(c.Request.Context(), categoryID, req.PreviousIDs())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(question))
}
