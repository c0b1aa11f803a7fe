package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
	"github.com/yourusername/trivia-questions-api/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
)

// categoriesCacheKey - ключ кеша для полного списка категорий
const categoriesCacheKey = "categories:all"

// CategoryService предоставляет методы для работы с категориями.
// Категории не меняются через API, поэтому их список кешируется.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// ListCategories возвращает отображение id -> название.
// Если категорий нет, возвращает ErrNotFound.
func (s *CategoryService) ListCategories(ctx context.Context) (map[uint]string, error) {
	formatted, err := s.CategoryMap(ctx)
	if err != nil {
		return nil, err
	}
	if len(formatted) == 0 {
		return nil, fmt.Errorf("%w: no categories", apperrors.ErrNotFound)
	}
	return formatted, nil
}

// CategoryMap возвращает отображение id -> название, пустое отображение не считается ошибкой
func (s *CategoryService) CategoryMap(ctx context.Context) (map[uint]string, error) {
	categories, err := s.allCategories(ctx)
	if err != nil {
		return nil, err
	}
	return entity.CategoryMap(categories), nil
}

// InvalidateCache сбрасывает закешированный список категорий
func (s *CategoryService) InvalidateCache(ctx context.Context) error {
	return s.cacheRepo.Delete(ctx, categoriesCacheKey)
}

// RefreshCache перечитывает категории из БД и заново кладет их в кеш
func (s *CategoryService) RefreshCache(ctx context.Context) error {
	if err := s.InvalidateCache(ctx); err != nil {
		return fmt.Errorf("failed to invalidate categories cache: %w", err)
	}
	categories, err := s.allCategories(ctx)
	if err != nil {
		return err
	}
	log.Printf("[CategoryService] Кеш категорий обновлен (%d)", len(categories))
	return nil
}

// allCategories читает категории из кеша, при промахе - из БД
func (s *CategoryService) allCategories(ctx context.Context) ([]entity.Category, error) {
	var cached []entity.Category
	err := s.cacheRepo.GetJSON(ctx, categoriesCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		// Ошибка кеша не должна ломать запрос
		log.Printf("[CategoryService] Ошибка чтения кеша категорий: %v", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	// Пустой список не кешируем: категории могут появиться после загрузки сидов
	if len(categories) > 0 {
		if err := s.cacheRepo.SetJSON(ctx, categoriesCacheKey, categories, s.cacheTTL); err != nil {
			log.Printf("[CategoryService] Не удалось сохранить категории в кеш: %v", err)
		}
	}
	return categories, nil
}
