package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-questions-api/internal/handler/dto"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
	"github.com/yourusername/trivia-questions-api/internal/pkg/pagination"
	"github.com/yourusername/trivia-questions-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
	categoryService *service.CategoryService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService, categoryService *service.CategoryService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		categoryService: categoryService,
	}
}

// ListQuestions возвращает страницу вопросов вместе со списком категорий
// GET /questions?page=N
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	ctx := c.Request.Context()
	page := pagination.ParsePage(c.Query("page"))

	result, err := h.questionService.ListQuestions(ctx, page)
	if err != nil {
		respondError(c, err)
		return
	}

	categories, err := h.categoryService.CategoryMap(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionPageResponse(result, categories))
}

// DeleteQuestion удаляет вопрос и возвращает первую (или запрошенную) страницу оставшихся
// DELETE /questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)
	page := pagination.ParsePage(c.Query("page"))

	result, err := h.questionService.DeleteQuestion(c.Request.Context(), questionID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	if subject := c.GetString("admin_subject"); subject != "" {
		log.Printf("[QuestionHandler] Вопрос ID=%d удален администратором %s", questionID, subject)
	}

	c.JSON(http.StatusOK, dto.DeleteQuestionResponse{
		Success:   true,
		Deleted:   questionID,
		Questions: dto.NewQuestionListResponse(result.Questions),
	})
}

// CreateQuestion создает вопрос, а при непустом поле search выполняет поиск
// POST /questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	page := pagination.ParsePage(c.Query("page"))

	if req.IsSearch() {
		result, err := h.questionService.SearchQuestions(ctx, *req.Search, page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSearchQuestionsResponse(result))
		return
	}

	question, err := req.ToEntity()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.CreateQuestion(ctx, question, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateQuestionResponse{
		Success:        true,
		Created:        question.ID,
		Questions:      dto.NewQuestionListResponse(result.Questions),
		TotalQuestions: result.TotalQuestions,
	})
}

// SearchQuestions ищет вопросы по подстроке. Пустой результат - 404.
// POST /questions/search
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	var req dto.SearchQuestionsRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.SearchQuestions(c.Request.Context(), *req.SearchTerm, pagination.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	if result.TotalQuestions == 0 {
		respondError(c, fmt.Errorf("%w: nothing matches %q", apperrors.ErrNotFound, *req.SearchTerm))
		return
	}

	c.JSON(http.StatusOK, dto.NewSearchQuestionsResponse(result))
}
