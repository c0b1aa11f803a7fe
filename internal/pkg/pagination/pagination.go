// Package pagination вычисляет окно страницы над уже упорядоченным списком.
package pagination

import "strconv"

// PageSize - количество элементов на странице
const PageSize = 10

// DefaultPage используется, когда номер страницы не передан или не является числом
const DefaultPage = 1

// ParsePage разбирает номер страницы из строки запроса.
// Пустая или нечисловая строка дает DefaultPage. Неположительные значения возвращаются как есть:
// для них Window вернет пустое окно.
func ParsePage(raw string) int {
	if raw == "" {
		return DefaultPage
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultPage
	}
	return page
}

// Bounds возвращает полуоткрытый интервал [start, end) страницы page для списка длины total.
// Обе границы прижаты к [0, total].
func Bounds(page, total int) (start, end int) {
	start = (page - 1) * PageSize
	end = start + PageSize
	return clamp(start, total), clamp(end, total)
}

// Window возвращает элементы страницы page. Страница за пределами списка дает пустой срез.
func Window[T any](items []T, page int) []T {
	start, end := Bounds(page, len(items))
	window := make([]T, end-start)
	copy(window, items[start:end])
	return window
}

func clamp(v, total int) int {
	if v < 0 {
		return 0
	}
	if v > total {
		return total
	}
	return v
}
