package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
)

// CartUseCase управляет корзиной сессии: загружает заказ, применяет Composer и сохраняет обратно.
type CartUseCase struct {
	cartRepo CartRepository
	products ProductUC
	composer *domain.Composer
	logger   logger.Logger
}

func NewCartUC(cartRepo CartRepository, products ProductUC, composer *domain.Composer, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		cartRepo: cartRepo,
		products: products,
		composer: composer,
		logger:   logger,
	}
}

// GetCart возвращает текущее состояние корзины.
func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.GetCart"

	order, err := c.load(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(sessionID, order), nil
}

// AddItem добавляет продукт в корзину. Снимок продукта берётся из каталога в момент добавления.
func (c *CartUseCase) AddItem(ctx context.Context, req *AddCartItemReq) (*CartView, error) {
	const op = "CartUseCase.AddItem"

	order, err := c.load(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := c.product(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := c.composer.AddLine(order, product, req.Portion, req.Quantity, req.Flavors); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.save(ctx, op, req.SessionID, order)
}

// SetQuantity меняет количество строки корзины; ноль удаляет строку.
func (c *CartUseCase) SetQuantity(ctx context.Context, req *SetCartQuantityReq) (*CartView, error) {
	const op = "CartUseCase.SetQuantity"

	order, err := c.load(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := c.composer.SetQuantity(order, req.LineID, req.Quantity); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.save(ctx, op, req.SessionID, order)
}

// RemoveItem удаляет строку корзины.
func (c *CartUseCase) RemoveItem(ctx context.Context, sessionID string, lineID string) (*CartView, error) {
	const op = "CartUseCase.RemoveItem"

	order, err := c.load(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.composer.RemoveLine(order, lineID)

	return c.save(ctx, op, sessionID, order)
}

// ClearCart удаляет корзину сессии целиком.
func (c *CartUseCase) ClearCart(ctx context.Context, sessionID string) error {
	const op = "CartUseCase.ClearCart"

	if strings.TrimSpace(sessionID) == "" {
		return e.Wrap(op, e.ErrMissingSessionID)
	}

	if err := c.cartRepo.Delete(ctx, sessionID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (c *CartUseCase) load(ctx context.Context, sessionID string) (*domain.Order, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, e.ErrMissingSessionID
	}

	return c.cartRepo.Get(ctx, sessionID)
}

func (c *CartUseCase) save(ctx context.Context, op string, sessionID string, order *domain.Order) (*CartView, error) {
	if err := c.cartRepo.Save(ctx, sessionID, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(sessionID, order), nil
}

// product возвращает активный продукт каталога.
func (c *CartUseCase) product(ctx context.Context, productID int64) (domain.Product, error) {
	res, err := c.products.GetProducts(ctx, NewGetProductsReq([]int64{productID}))
	if err != nil {
		return domain.Product{}, err
	}

	if len(res.Products) == 0 || !res.Products[0].IsActive {
		return domain.Product{}, e.ErrProductNotFound
	}

	return res.Products[0], nil
}
