package converter

// ProductRedisModel — снимок продукта в кэше и внутри сохранённой корзины.
type ProductRedisModel struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CategoryID    int64  `json:"category_id"`
	Category      string `json:"category"`
	WholePrice    int64  `json:"whole_price"`
	HalfPrice     *int64 `json:"half_price,omitempty"`
	StockQuantity *int64 `json:"stock_quantity,omitempty"`
	PhotoKey      string `json:"photo_key,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// CartLineRedisModel — строка корзины.
type CartLineRedisModel struct {
	ID       string            `json:"id"`
	Product  ProductRedisModel `json:"product"`
	Portion  string            `json:"portion"`
	Quantity int               `json:"quantity"`
	Flavors  []string          `json:"flavors"`
}

// CartRedisModel — корзина сессии целиком.
type CartRedisModel struct {
	Lines []CartLineRedisModel `json:"lines"`
}
