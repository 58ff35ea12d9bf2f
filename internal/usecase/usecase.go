package usecase

import (
	"context"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
)

type ProductUC interface {
	ListProducts(ctx context.Context) ([]ProductView, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetProducts(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
}

type CartUC interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, req *AddCartItemReq) (*CartView, error)
	SetQuantity(ctx context.Context, req *SetCartQuantityReq) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID string, lineID string) (*CartView, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type AvailabilityUC interface {
	Check(ctx context.Context) domain.AvailabilityDecision
	GetSettings(ctx context.Context) (*domain.ShopSettings, error)
	UpdateSettings(ctx context.Context, settings domain.ShopSettings) (*domain.ShopSettings, error)
}

type OrderUC interface {
	SubmitOrder(ctx context.Context, req *SubmitOrderReq) (*SubmitOrderRes, error)
}
