package repository

import (
	"context"

	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами.
// Все списки упорядочены по id по возрастанию.
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]entity.Question, error)
	GetByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error)

	// Search ищет вопросы, текст которых содержит term без учета регистра
	Search(ctx context.Context, term string) ([]entity.Question, error)

	// GetRandomUnseen возвращает случайный вопрос, id которого нет в excludeIDs.
	// categoryID == nil означает все категории. Если подходящих вопросов нет, возвращает nil, nil.
	GetRandomUnseen(ctx context.Context, categoryID *uint, excludeIDs []uint) (*entity.Question, error)
}
