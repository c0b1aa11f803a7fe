package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"1.5", 1},
		{"3", 3},
		{"0", 0},
		{"-2", -2},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePage(tt.raw))
		})
	}
}

func TestWindow(t *testing.T) {
	items := seq(25)

	tests := []struct {
		name string
		page int
		want []int
	}{
		{"первая страница", 1, seq(10)},
		{"вторая страница", 2, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}},
		{"неполная последняя страница", 3, []int{21, 22, 23, 24, 25}},
		{"страница за пределами", 4, []int{}},
		{"далеко за пределами", 1000, []int{}},
		{"нулевая страница", 0, []int{}},
		{"отрицательная страница", -1, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(items, tt.page))
		})
	}
}

func TestWindow_AllLengths(t *testing.T) {
	// Для любого L страница P содержит элементы [(P-1)*10, P*10) ∩ [0, L)
	for length := 0; length <= 35; length++ {
		items := seq(length)
		pages := (length + PageSize - 1) / PageSize
		collected := make([]int, 0, length)
		for page := 1; page <= pages; page++ {
			window := Window(items, page)
			assert.NotEmpty(t, window, "L=%d P=%d", length, page)
			assert.LessOrEqual(t, len(window), PageSize)
			collected = append(collected, window...)
		}
		assert.Equal(t, items, collected, "страницы должны покрывать весь список по порядку, L=%d", length)
		assert.Empty(t, Window(items, pages+1), "страница после последней должна быть пустой, L=%d", length)
	}
}

func TestWindow_DoesNotAliasInput(t *testing.T) {
	items := seq(12)

	window := Window(items, 1)
	window[0] = 100

	assert.Equal(t, 1, items[0], "Window не должен изменять исходный список")
}

func TestBounds(t *testing.T) {
	start, end := Bounds(2, 15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = Bounds(5, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)
}
