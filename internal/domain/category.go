package domain

import "time"

// CategoryPizza — слаг категории, для которой доступны половинки и автосклейка.
const CategoryPizza = "pizza"

// Category описывает категорию продукта
type Category struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt *time.Time
	IsActive  bool
}

func NewCategory(name string, slug string) *Category {
	return &Category{
		Name: name,
		Slug: slug,
	}
}
