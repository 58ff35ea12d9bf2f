package domain

// Product описывает продукт каталога. Внутри корзины используется как неизменяемый снимок.
type Product struct {
	ID            int64
	Name          string
	CategoryID    int64
	Category      string // слаг категории
	WholePrice    int64  // Цена целой порции в центах
	HalfPrice     *int64 // Цена половинки в центах, есть только у пицц
	StockQuantity *int64 // nil — остаток не отслеживается
	PhotoKey      string // ключ объекта в MinIO
	IsActive      bool
}

func NewProduct(id int64, name string, category string, wholePrice int64) *Product {
	return &Product{
		ID:         id,
		Name:       name,
		Category:   category,
		WholePrice: wholePrice,
		IsActive:   true,
	}
}

// IsPizza сообщает, относится ли продукт к категории пицц.
func (p Product) IsPizza() bool {
	return p.Category == CategoryPizza
}

// HasTrackedStock сообщает, ведётся ли учёт остатков по продукту.
// Остатки пицц не отслеживаются.
func (p Product) HasTrackedStock() bool {
	return !p.IsPizza() && p.StockQuantity != nil
}
