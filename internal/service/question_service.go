package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
	"github.com/yourusername/trivia-questions-api/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
	"github.com/yourusername/trivia-questions-api/internal/pkg/pagination"
)

// QuestionPage - окно страницы вопросов вместе с метаданными списка
type QuestionPage struct {
	Questions []entity.Question
	// TotalQuestions - размер полного списка до пагинации
	TotalQuestions int
	// CurrentCategory - категория последнего вопроса в окне
	CurrentCategory *uint
}

func newQuestionPage(all []entity.Question, page int) *QuestionPage {
	window := pagination.Window(all, page)
	return &QuestionPage{
		Questions:       window,
		TotalQuestions:  len(all),
		CurrentCategory: entity.CurrentCategory(window),
	}
}

// QuestionService предоставляет методы для работы с вопросами
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
	}
}

// ListQuestions возвращает страницу полного списка вопросов.
// Пустое окно (например, страница за пределами списка) - ErrNotFound.
func (s *QuestionService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	all, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	result := newQuestionPage(all, page)
	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("%w: page %d is empty", apperrors.ErrNotFound, page)
	}
	return result, nil
}

// DeleteQuestion удаляет вопрос и возвращает страницу обновленного списка.
// Несуществующий вопрос - ErrBadRequest, любая другая ошибка - ErrUnprocessable.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint, page int) (*QuestionPage, error) {
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: question %d does not exist", apperrors.ErrBadRequest, id)
		}
		log.Printf("[QuestionService] Ошибка получения вопроса ID=%d перед удалением: %v", id, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		log.Printf("[QuestionService] Ошибка удаления вопроса ID=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}

	all, err := s.questionRepo.List(ctx)
	if err != nil {
		log.Printf("[QuestionService] Ошибка получения списка после удаления вопроса ID=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}

	log.Printf("[QuestionService] Вопрос ID=%d удален, осталось %d", id, len(all))
	return newQuestionPage(all, page), nil
}

// CreateQuestion сохраняет новый вопрос без проверки обязательных полей
// и возвращает страницу обновленного списка.
func (s *QuestionService) CreateQuestion(ctx context.Context, question *entity.Question, page int) (*QuestionPage, error) {
	if err := s.questionRepo.Create(ctx, question); err != nil {
		log.Printf("[QuestionService] Ошибка создания вопроса: %v", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}

	all, err := s.questionRepo.List(ctx)
	if err != nil {
		log.Printf("[QuestionService] Ошибка получения списка после создания вопроса ID=%d: %v", question.ID, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}

	return newQuestionPage(all, page), nil
}

// SearchQuestions ищет вопросы по подстроке без учета регистра и возвращает страницу результатов.
// Пустой результат ошибкой не является.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	found, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		log.Printf("[QuestionService] Ошибка поиска по '%s': %v", term, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}
	return newQuestionPage(found, page), nil
}

// GetQuestionsByCategory возвращает все вопросы категории без пагинации.
// Неизвестная категория - ErrNotFound, категория без вопросов - ErrUnprocessable.
func (s *QuestionService) GetQuestionsByCategory(ctx context.Context, categoryID uint) (*QuestionPage, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}

	questions, err := s.questionRepo.GetByCategory(ctx, categoryID)
	if err != nil {
		log.Printf("[QuestionService] Ошибка получения вопросов категории %d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
	}

	// Текущая категория берется из последнего вопроса, поэтому пустой список не обрабатывается
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: category %d has no questions", apperrors.ErrUnprocessable, categoryID)
	}

	return &QuestionPage{
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: entity.CurrentCategory(questions),
	}, nil
}

// ListAllQuestions возвращает все вопросы без пагинации (для экспорта)
func (s *QuestionService) ListAllQuestions(ctx context.Context) ([]entity.Question, error) {
	return s.questionRepo.List(ctx)
}
