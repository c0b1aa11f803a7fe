package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrBadRequest используется для некорректных или отсутствующих обязательных входных данных.
	ErrBadRequest = errors.New("bad request")

	// ErrUnprocessable используется, когда запрос корректен по форме, но операцию не удалось выполнить
	// (например, ошибка базы данных при создании или удалении вопроса).
	ErrUnprocessable = errors.New("unprocessable")

	// ErrValidation используется для ошибок преобразования значений полей запроса.
	// Обработчики трактуют ее так же, как ErrUnprocessable.
	ErrValidation = errors.New("validation failed")
)
