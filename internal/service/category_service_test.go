package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
)

func TestCategoryService_ListCategories_CacheMiss(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCategoryRepo := new(MockCategoryRepository)
	mockCache := new(MockCacheRepository)
	categories := []entity.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}

	mockCache.On("GetJSON", ctx, categoriesCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockCategoryRepo.On("List", ctx).Return(categories, nil)
	mockCache.On("SetJSON", ctx, categoriesCacheKey, categories, time.Hour).Return(nil)

	categoryService := NewCategoryService(mockCategoryRepo, mockCache, time.Hour)

	// Act
	formatted, err := categoryService.ListCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{1: "Science", 2: "Art"}, formatted)
	mockCategoryRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCategoryService_ListCategories_CacheHit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCategoryRepo := new(MockCategoryRepository)
	mockCache := new(MockCacheRepository)

	mockCache.On("GetJSON", ctx, categoriesCacheKey, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]entity.Category)
			*dest = []entity.Category{{ID: 3, Type: "Geography"}}
		}).
		Return(nil)

	categoryService := NewCategoryService(mockCategoryRepo, mockCache, time.Hour)

	// Act
	formatted, err := categoryService.ListCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{3: "Geography"}, formatted)
	// При попадании в кеш БД не опрашивается
	mockCategoryRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestCategoryService_ListCategories_CacheErrorFallsBackToDB(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCategoryRepo := new(MockCategoryRepository)
	mockCache := new(MockCacheRepository)
	categories := []entity.Category{{ID: 1, Type: "Science"}}

	mockCache.On("GetJSON", ctx, categoriesCacheKey, mock.Anything).Return(errors.New("connection refused"))
	mockCategoryRepo.On("List", ctx).Return(categories, nil)
	mockCache.On("SetJSON", ctx, categoriesCacheKey, categories, time.Minute).Return(errors.New("connection refused"))

	categoryService := NewCategoryService(mockCategoryRepo, mockCache, time.Minute)

	// Act
	formatted, err := categoryService.ListCategories(ctx)

	// Assert
	require.NoError(t, err, "Ошибки кеша не должны ломать запрос")
	assert.Equal(t, map[uint]string{1: "Science"}, formatted)
}

func TestCategoryService_ListCategories_Empty(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCategoryRepo := new(MockCategoryRepository)
	mockCache := new(MockCacheRepository)

	mockCache.On("GetJSON", ctx, categoriesCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockCategoryRepo.On("List", ctx).Return([]entity.Category{}, nil)

	categoryService := NewCategoryService(mockCategoryRepo, mockCache, time.Hour)

	// Act
	formatted, err := categoryService.ListCategories(ctx)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, formatted)
	// Пустой список не кешируется
	mockCache.AssertNotCalled(t, "SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryService_CategoryMap_EmptyIsNotError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCategoryRepo := new(MockCategoryRepository)
	mockCache := new(MockCacheRepository)

	mockCache.On("GetJSON", ctx, categoriesCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockCategoryRepo.On("List", ctx).Return([]entity.Category{}, nil)

	categoryService := NewCategoryService(mockCategoryRepo, mockCache, time.Hour)

	// Act
	formatted, err := categoryService.CategoryMap(ctx)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, formatted)
}

func TestCategoryService_ListCategories_DBError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCategoryRepo := new(MockCategoryRepository)
	mockCache := new(MockCacheRepository)
	dbErr := errors.New("database is down")

	mockCache.On("GetJSON", ctx, categoriesCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockCategoryRepo.On("List", ctx).Return(nil, dbErr)

	categoryService := NewCategoryService(mockCategoryRepo, mockCache, time.Hour)

	// Act
	_, err := categoryService.ListCategories(ctx)

	// Assert
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryService_InvalidateCache(t *testing.T) {
	ctx := context.Background()
	mockCache := new(MockCacheRepository)
	mockCache.On("Delete", ctx, categoriesCacheKey).Return(nil)

	categoryService := NewCategoryService(new(MockCategoryRepository), mockCache, time.Hour)

	require.NoError(t, categoryService.InvalidateCache(ctx))
	mockCache.AssertExpectations(t)
}

func TestCategoryService_RefreshCache(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCategoryRepo := new(MockCategoryRepository)
	mockCache := new(MockCacheRepository)
	categories := []entity.Category{{ID: 1, Type: "Science"}}

	mockCache.On("Delete", ctx, categoriesCacheKey).Return(nil)
	mockCache.On("GetJSON", ctx, categoriesCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockCategoryRepo.On("List", ctx).Return(categories, nil)
	mockCache.On("SetJSON", ctx, categoriesCacheKey, categories, time.Hour).Return(nil)

	categoryService := NewCategoryService(mockCategoryRepo, mockCache, time.Hour)

	// Act
	err := categoryService.RefreshCache(ctx)

	// Assert
	require.NoError(t, err)
	mockCategoryRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCategoryService_RefreshCache_DeleteFails(t *testing.T) {
	ctx := context.Background()
	mockCache := new(MockCacheRepository)
	cacheErr := errors.New("redis: connection refused")
	mockCache.On("Delete", ctx, categoriesCacheKey).Return(cacheErr)

	categoryService := NewCategoryService(new(MockCategoryRepository), mockCache, time.Hour)

	err := categoryService.RefreshCache(ctx)

	assert.ErrorIs(t, err, cacheErr)
	mockCache.AssertExpectations(t)
}
