package entity

// Category представляет категорию вопросов (Science, Art, ...)
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"column:type;not null" json:"type"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// CategoryMap форматирует список категорий в отображение id -> название
func CategoryMap(categories []Category) map[uint]string {
	formatted := make(map[uint]string, len(categories))
	for _, c := range categories {
		formatted[c.ID] = c.Type
	}
	return formatted
}
