package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartUC(carts *fakeCartRepo, products ...domain.Product) *CartUseCase {
	productUC := NewProductUC(newFakeProductRepo(products...), &fakeCategoryRepo{}, newFakeCacheRepo(), &fakeImages{}, logger.NewNop())
	return NewCartUC(carts, productUC, seqComposer(), logger.NewNop())
}

func TestCart_AddHalvesFoldIntoWhole(t *testing.T) {
	carts := newFakeCartRepo()
	uc := newCartUC(carts, margherita())
	ctx := context.Background()

	view, err := uc.AddItem(ctx, &AddCartItemReq{SessionID: "s1", ProductID: 1, Portion: domain.PortionHalf, Quantity: 1})
	require.NoError(t, err)
	assert.False(t, view.Validation.Valid)
	assert.Equal(t, int64(2800), view.Total)

	view, err = uc.AddItem(ctx, &AddCartItemReq{SessionID: "s1", ProductID: 1, Portion: domain.PortionHalf, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, domain.PortionWhole, view.Lines[0].Line.Portion)
	assert.Equal(t, int64(5000), view.Lines[0].UnitPrice)
	assert.Equal(t, int64(5000), view.Total)
	assert.True(t, view.Validation.Valid)

	stored := carts.carts["s1"]
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, 1, stored.Lines[0].Quantity)
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	carts := newFakeCartRepo()
	uc := newCartUC(carts, margherita(), soda())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, &AddCartItemReq{SessionID: "s1", ProductID: 10, Portion: domain.PortionWhole, Quantity: 1})
	require.NoError(t, err)
	view, err := uc.AddItem(ctx, &AddCartItemReq{SessionID: "s1", ProductID: 1, Portion: domain.PortionWhole, Quantity: 1})
	require.NoError(t, err)
	sodaLine := view.Lines[0].Line.ID

	view, err = uc.SetQuantity(ctx, &SetCartQuantityReq{SessionID: "s1", LineID: sodaLine, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3*1200), view.Lines[0].LineTotal)
	assert.Equal(t, int64(3*1200+5000), view.Total)

	view, err = uc.RemoveItem(ctx, "s1", sodaLine)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Margherita", view.Lines[0].Line.Product.Name)

	_, err = uc.SetQuantity(ctx, &SetCartQuantityReq{SessionID: "s1", LineID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, e.ErrLineNotFound)

	require.NoError(t, uc.ClearCart(ctx, "s1"))
	view, err = uc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, int64(0), view.Total)
}

func TestCart_Errors(t *testing.T) {
	carts := newFakeCartRepo()
	inactive := calabresa()
	inactive.IsActive = false
	uc := newCartUC(carts, soda(), inactive)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, &AddCartItemReq{SessionID: "s1", ProductID: 99, Portion: domain.PortionWhole, Quantity: 1})
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = uc.AddItem(ctx, &AddCartItemReq{SessionID: "s1", ProductID: 2, Portion: domain.PortionWhole, Quantity: 1})
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = uc.AddItem(ctx, &AddCartItemReq{SessionID: "s1", ProductID: 10, Portion: domain.PortionHalf, Quantity: 1})
	assert.ErrorIs(t, err, e.ErrHalfPortionUnavailable)

	_, err = uc.AddItem(ctx, &AddCartItemReq{SessionID: "s1", ProductID: 10, Portion: domain.PortionWhole, Quantity: 0})
	assert.ErrorIs(t, err, e.ErrInvalidQuantity)

	_, err = uc.GetCart(ctx, " ")
	assert.ErrorIs(t, err, e.ErrMissingSessionID)

	assert.Empty(t, carts.carts)
}

func TestCart_SaveFailure(t *testing.T) {
	carts := newFakeCartRepo()
	carts.saveErr = errStorage
	uc := newCartUC(carts, soda())

	_, err := uc.AddItem(context.Background(), &AddCartItemReq{SessionID: "s1", ProductID: 10, Portion: domain.PortionWhole, Quantity: 1})
	assert.ErrorIs(t, err, errStorage)
}
