package converter

import "time"

// ProductModel представляет запись таблицы products вместе со слагом категории.
type ProductModel struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	CategoryID    int64      `db:"category_id"`
	CategorySlug  string     `db:"category_slug"`
	WholePrice    int64      `db:"whole_price"`
	HalfPrice     *int64     `db:"half_price"`
	StockQuantity *int64     `db:"stock_quantity"`
	PhotoKey      *string    `db:"photo_key"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
	IsArchived    bool       `db:"is_archived"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID         int64      `db:"id"`
	Name       string     `db:"name"`
	Slug       string     `db:"slug"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
	IsArchived bool       `db:"is_archived"`
}

// OutboxEventModel представляет запись таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	Attempts    int        `db:"attempts"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
