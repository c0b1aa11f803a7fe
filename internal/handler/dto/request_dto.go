package dto

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
)

// FlexInt - целое число, которое в JSON может прийти числом или строкой ("2").
// Веб-клиент отправляет категорию и сложность строками из <select>.
type FlexInt int64

// UnmarshalJSON реализует json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*f = FlexInt(v)
		return nil
	}
	// 2.0 допустимо, 2.5 - нет
	if v, err := strconv.ParseFloat(raw, 64); err == nil && v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
		*f = FlexInt(v)
		return nil
	}
	return fmt.Errorf("%w: %s is not an integer", apperrors.ErrValidation, raw)
}

// Uint возвращает значение как идентификатор. Отрицательные значения недопустимы.
func (f FlexInt) Uint() (uint, error) {
	if f < 0 || int64(f) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d is not a valid identifier", apperrors.ErrValidation, int64(f))
	}
	return uint(f), nil
}

// CreateQuestionRequest - тело POST /questions.
// Либо непустой Search (поиск), либо поля нового вопроса; обязательных полей нет.
type CreateQuestionRequest struct {
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Category   *FlexInt `json:"category"`
	Difficulty *FlexInt `json:"difficulty"`
	Search     *string  `json:"search"`
}

// IsSearch сообщает, что запрос является поиском
func (r *CreateQuestionRequest) IsSearch() bool {
	return r.Search != nil && *r.Search != ""
}

// ToEntity преобразует запрос в новый вопрос
func (r *CreateQuestionRequest) ToEntity() (*entity.Question, error) {
	question := &entity.Question{
		Text:   r.Question,
		Answer: r.Answer,
	}
	if r.Category != nil {
		categoryID, err := r.Category.Uint()
		if err != nil {
			return nil, err
		}
		question.CategoryID = &categoryID
	}
	if r.Difficulty != nil {
		if *r.Difficulty < math.MinInt32 || *r.Difficulty > math.MaxInt32 {
			return nil, fmt.Errorf("%w: difficulty %d is out of range", apperrors.ErrValidation, int64(*r.Difficulty))
		}
		difficulty := int(*r.Difficulty)
		question.Difficulty = &difficulty
	}
	return question, nil
}

// SearchQuestionsRequest - тело POST /questions/search
type SearchQuestionsRequest struct {
	SearchTerm *string `json:"searchTerm" binding:"required"`
}

// QuizCategoryRequest - категория игры; id 0 означает все категории
type QuizCategoryRequest struct {
	ID   *FlexInt `json:"id"`
	Type string   `json:"type"`
}

// IsEmpty сообщает, что объект категории пуст ({}), что равносильно ее отсутствию
func (r *QuizCategoryRequest) IsEmpty() bool {
	return r == nil || (r.ID == nil && r.Type == "")
}

// QuizRequest - тело POST /quizzes
type QuizRequest struct {
	PreviousQuestions []FlexInt            `json:"previous_questions"`
	QuizCategory      *QuizCategoryRequest `json:"quiz_category" binding:"required"`
}

// CategoryID возвращает id категории игры. Отсутствующий или некорректный id - ErrValidation.
func (r *QuizRequest) CategoryID() (uint, error) {
	if r.QuizCategory == nil || r.QuizCategory.ID == nil {
		return 0, fmt.Errorf("%w: quiz_category.id is required", apperrors.ErrValidation)
	}
	return r.QuizCategory.ID.Uint()
}

// PreviousIDs возвращает идентификаторы уже заданных вопросов.
// Неположительные значения не могут совпасть ни с одним вопросом и отбрасываются.
func (r *QuizRequest) PreviousIDs() []uint {
	ids := make([]uint, 0, len(r.PreviousQuestions))
	for _, v := range r.PreviousQuestions {
		if id, err := v.Uint(); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
