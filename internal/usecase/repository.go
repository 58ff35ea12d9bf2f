package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
)

type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

// CartRepository хранит корзины между сессиями. Отсутствующая корзина возвращается пустой.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Order, error)
	Save(ctx context.Context, sessionID string, order *domain.Order) error
	Delete(ctx context.Context, sessionID string) error
}

type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, values map[string]string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *OrderSubmission) (int64, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
}

// TxManager выполняет fn в одной транзакции БД.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImageRepository выдаёт ссылки на объекты хранилища фотографий.
type ImageRepository interface {
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
