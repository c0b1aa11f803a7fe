package entity

// Question представляет вопрос викторины.
// Все поля, кроме ID, допускают NULL: вопрос создается без серверной валидации обязательных полей.
type Question struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Text       *string `gorm:"column:question" json:"question"`
	Answer     *string `gorm:"column:answer" json:"answer"`
	CategoryID *uint   `gorm:"column:category;index" json:"category"`
	Difficulty *int    `gorm:"column:difficulty" json:"difficulty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CurrentCategory возвращает категорию последнего вопроса в списке.
// Веб-клиент ожидает именно это значение в поле current_category.
// Для пустого списка или вопроса без категории возвращает nil.
func CurrentCategory(questions []Question) *uint {
	var current *uint
	for _, q := range questions {
		current = q.CategoryID
	}
	return current
}
