package service

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
	"github.com/yourusername/trivia-questions-api/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
)

// AllCategoriesID - идентификатор категории "все вопросы" в режиме игры
const AllCategoriesID uint = 0

// QuizService выбирает вопросы для режима игры
type QuizService struct {
	questionRepo repository.QuestionRepository
}

// NewQuizService создает новый сервис игры
func NewQuizService(questionRepo repository.QuestionRepository) *QuizService {
	return &QuizService{questionRepo: questionRepo}
}

// NextQuestion возвращает случайный вопрос категории, которого нет в previousIDs.
// categoryID == AllCategoriesID означает все категории.
// Если все вопросы уже заданы, возвращает nil без ошибки.
func (s *QuizService) NextQuestion(ctx context.Context, categoryID uint, previousIDs []uint) (*entity.Question, error) {
	var filter *uint
	if categoryID != AllCategoriesID {
		filter = &categoryID
	}

	question, err := s.questionRepo.GetRandomUnseen(ctx, filter, previousIDs)
	if err != nil {
		log.Printf("[QuizService] Ошибка выбора вопроса (category=%d, previous=%d): %v", categoryID, len(previousIDs), err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}
	if question == nil {
		log.Printf("[QuizService] Вопросы категории %d закончились (задано %d)", categoryID, len(previousIDs))
	}
	return question, nil
}
