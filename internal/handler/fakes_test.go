package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
	redisrepo "github.com/yourusername/trivia-questions-api/internal/repository/redis"
	"github.com/yourusername/trivia-questions-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errDatabaseDown = errors.New("connection refused")

// fakeQuestionRepo - репозиторий вопросов в памяти
type fakeQuestionRepo struct {
	questions []entity.Question
	nextID    uint
	failWith  error
}

func newFakeQuestionRepo(questions ...entity.Question) *fakeQuestionRepo {
	repo := &fakeQuestionRepo{nextID: 1}
	for _, q := range questions {
		repo.questions = append(repo.questions, q)
		if q.ID >= repo.nextID {
			repo.nextID = q.ID + 1
		}
	}
	sort.Slice(repo.questions, func(i, j int) bool { return repo.questions[i].ID < repo.questions[j].ID })
	return repo
}

func (r *fakeQuestionRepo) Create(_ context.Context, question *entity.Question) error {
	if r.failWith != nil {
		return r.failWith
	}
	question.ID = r.nextID
	r.nextID++
	r.questions = append(r.questions, *question)
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id uint) (*entity.Question, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for i := range r.questions {
		if r.questions[i].ID == id {
			q := r.questions[i]
			return &q, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id uint) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i := range r.questions {
		if r.questions[i].ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeQuestionRepo) List(_ context.Context) ([]entity.Question, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return append([]entity.Question(nil), r.questions...), nil
}

func (r *fakeQuestionRepo) GetByCategory(_ context.Context, categoryID uint) ([]entity.Question, error) {
	return r.filter(func(q entity.Question) bool {
		return q.CategoryID != nil && *q.CategoryID == categoryID
	})
}

func (r *fakeQuestionRepo) Search(_ context.Context, term string) ([]entity.Question, error) {
	term = strings.ToLower(term)
	return r.filter(func(q entity.Question) bool {
		return q.Text != nil && strings.Contains(strings.ToLower(*q.Text), term)
	})
}

// GetRandomUnseen детерминирован: возвращает первый подходящий вопрос
func (r *fakeQuestionRepo) GetRandomUnseen(_ context.Context, categoryID *uint, excludeIDs []uint) (*entity.Question, error) {
	seen := make(map[uint]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		seen[id] = true
	}
	candidates, err := r.filter(func(q entity.Question) bool {
		if seen[q.ID] {
			return false
		}
		return categoryID == nil || (q.CategoryID != nil && *q.CategoryID == *categoryID)
	})
	if err != nil || len(candidates) == 0 {
		return nil, err
	}
	return &candidates[0], nil
}

func (r *fakeQuestionRepo) filter(keep func(entity.Question) bool) ([]entity.Question, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	result := []entity.Question{}
	for _, q := range r.questions {
		if keep(q) {
			result = append(result, q)
		}
	}
	return result, nil
}

// fakeCategoryRepo - репозиторий категорий в памяти
type fakeCategoryRepo struct {
	categories []entity.Category
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	return append([]entity.Category(nil), r.categories...), nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uint) (*entity.Category, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			c := r.categories[i]
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func strPtr(s string) *string { return &s }
func uintPtr(u uint) *uint    { return &u }
func intPtr(i int) *int       { return &i }

func standardCategories() []entity.Category {
	return []entity.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
}

// makeQuestions создает n вопросов с id 1..n в категориях 1 и 2 поочередно
func makeQuestions(n int) []entity.Question {
	questions := make([]entity.Question, n)
	for i := range questions {
		category := uint(i%2 + 1)
		questions[i] = entity.Question{
			ID:         uint(i + 1),
			Text:       strPtr("Question " + string(rune('A'+i%26))),
			Answer:     strPtr("Answer"),
			CategoryID: &category,
			Difficulty: intPtr(i%5 + 1),
		}
	}
	return questions
}

type testEnv struct {
	router     *gin.Engine
	questions  *fakeQuestionRepo
	categories *fakeCategoryRepo
}

func newTestEnv(categories []entity.Category, questions []entity.Question) *testEnv {
	questionRepo := newFakeQuestionRepo(questions...)
	categoryRepo := &fakeCategoryRepo{categories: categories}

	deps := RouterDeps{
		CategoryService: service.NewCategoryService(categoryRepo, redisrepo.NoOpCache{}, 0),
		QuestionService: service.NewQuestionService(questionRepo, categoryRepo),
		QuizService:     service.NewQuizService(questionRepo),
		HealthChecks:    map[string]Pinger{},
	}
	return &testEnv{
		router:     NewRouter(deps, RouterConfig{APIPrefix: "/api", AllowOrigins: []string{"*"}}),
		questions:  questionRepo,
		categories: categoryRepo,
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}
