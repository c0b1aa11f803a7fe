package dto

import (
	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
	"github.com/yourusername/trivia-questions-api/internal/service"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Отсутствующие значения сериализуются как null.
type QuestionResponse struct {
	ID         uint    `json:"id"`
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   *uint   `json:"category"`
	Difficulty *int    `json:"difficulty"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Question:   q.Text,
		Answer:     q.Answer,
		Category:   q.CategoryID,
		Difficulty: q.Difficulty,
	}
}

// NewQuestionListResponse создает DTO для списка вопросов. Пустой список сериализуется как [].
func NewQuestionListResponse(questions []entity.Question) []QuestionResponse {
	response := make([]QuestionResponse, len(questions))
	for i := range questions {
		response[i] = NewQuestionResponse(&questions[i])
	}
	return response
}

// CategoriesResponse - ответ GET /categories
type CategoriesResponse struct {
	Success    bool            `json:"success"`
	Categories map[uint]string `json:"categories"`
}

// QuestionListResponse - ответ GET /questions
type QuestionListResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	Categories      map[uint]string    `json:"categories"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *uint              `json:"current_category"`
}

// NewQuestionPageResponse создает ответ со страницей вопросов и категориями
func NewQuestionPageResponse(page *service.QuestionPage, categories map[uint]string) *QuestionListResponse {
	return &QuestionListResponse{
		Success:         true,
		Questions:       NewQuestionListResponse(page.Questions),
		Categories:      categories,
		TotalQuestions:  page.TotalQuestions,
		CurrentCategory: page.CurrentCategory,
	}
}

// DeleteQuestionResponse - ответ DELETE /questions/{id}
type DeleteQuestionResponse struct {
	Success   bool               `json:"success"`
	Deleted   uint               `json:"deleted"`
	Questions []QuestionResponse `json:"questions"`
}

// CreateQuestionResponse - ответ POST /questions при создании вопроса
type CreateQuestionResponse struct {
	Success        bool               `json:"success"`
	Created        uint               `json:"created"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

// SearchQuestionsResponse - ответ на поиск вопросов
type SearchQuestionsResponse struct {
	Success        bool               `json:"success"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

// NewSearchQuestionsResponse создает ответ на поиск из страницы результатов
func NewSearchQuestionsResponse(page *service.QuestionPage) *SearchQuestionsResponse {
	return &SearchQuestionsResponse{
		Success:        true,
		Questions:      NewQuestionListResponse(page.Questions),
		TotalQuestions: page.TotalQuestions,
	}
}

// CategoryQuestionsResponse - ответ GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *uint              `json:"current_category"`
}

// QuizResponse - ответ POST /quizzes. Question == nil означает, что вопросы закончились.
type QuizResponse struct {
	Success  bool              `json:"success"`
	Question *QuestionResponse `json:"question"`
}

// NewQuizResponse создает ответ игры
func NewQuizResponse(q *entity.Question) *QuizResponse {
	resp := &QuizResponse{Success: true}
	if q != nil {
		question := NewQuestionResponse(q)
		resp.Question = &question
	}
	return resp
}
