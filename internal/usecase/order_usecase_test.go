package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderDeps struct {
	carts    *fakeCartRepo
	orders   *fakeOrderRepo
	products *fakeProductRepo
	cache    *fakeCacheRepo
	outbox   *fakeOutboxRepo
	tx       *fakeTxManager
	avail    *fakeAvailability
	encoder  *fakeEncoder
	metrics  *fakeMetrics
}

func newOrderDeps() *orderDeps {
	return &orderDeps{
		carts:    newFakeCartRepo(),
		orders:   &fakeOrderRepo{},
		products: newFakeProductRepo(),
		cache:    newFakeCacheRepo(),
		outbox:   &fakeOutboxRepo{},
		tx:       &fakeTxManager{},
		avail:    &fakeAvailability{decision: domain.AvailabilityDecision{IsOpen: true}},
		encoder:  &fakeEncoder{},
		metrics:  &fakeMetrics{},
	}
}

func (d *orderDeps) uc() *OrderUseCase {
	return NewOrderUC(d.carts, d.orders, d.products, d.cache, d.outbox, d.tx, d.avail, d.encoder,
		fixedClock(thursdayNoonUTC), d.metrics, "5511999999999", logger.NewNop())
}

func (d *orderDeps) fillCart(t *testing.T, sessionID string, add func(c *domain.Composer, o *domain.Order)) {
	t.Helper()
	var o domain.Order
	add(seqComposer(), &o)
	require.NoError(t, d.carts.Save(context.Background(), sessionID, &o))
}

func TestSubmitOrder_Success(t *testing.T) {
	d := newOrderDeps()
	d.fillCart(t, "s1", func(c *domain.Composer, o *domain.Order) {
		require.NoError(t, c.AddLine(o, margherita(), domain.PortionWhole, 1, nil))
		require.NoError(t, c.AddLine(o, soda(), domain.PortionWhole, 2, nil))
	})

	require.NoError(t, d.cache.SetProducts(context.Background(), []domain.Product{margherita(), soda()}))

	res, err := d.uc().SubmitOrder(context.Background(), &SubmitOrderReq{SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.OrderID)
	assert.Equal(t, int64(5000+2*1200), res.Total)
	assert.NotEmpty(t, res.EventID)
	assert.True(t, strings.HasPrefix(res.WhatsAppURL, "https://wa.me/5511999999999?text="))
	assert.Contains(t, res.Message, "1x Inteira: Margherita")

	u, err := url.Parse(res.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, res.Message, u.Query().Get("text"))

	require.Len(t, d.orders.created, 1)
	sub := d.orders.created[0]
	assert.Equal(t, "5511999999999", sub.ContactNumber)
	require.Len(t, sub.Lines, 2)
	assert.Equal(t, int64(5000), sub.Lines[0].UnitPriceUsed)
	assert.Equal(t, int64(1200), sub.Lines[1].UnitPriceUsed)

	// Остаток уменьшается только у напитка, пиццы не учитываются
	assert.Equal(t, map[int64]int{10: 2}, d.products.decremented)
	assert.False(t, d.cache.cached(10))
	assert.True(t, d.cache.cached(1))

	require.Len(t, d.outbox.events, 1)
	ev := d.outbox.events[0]
	assert.Equal(t, OrderSubmittedEventType, ev.EventType)
	assert.Equal(t, Pending, ev.Status)
	assert.Equal(t, int64(1), ev.OrderID)
	assert.Equal(t, res.EventID, ev.EventID)

	require.Len(t, d.encoder.events, 1)
	assert.Equal(t, thursdayNoonUTC, d.encoder.events[0].SubmittedAt)

	assert.Equal(t, 1, d.tx.calls)
	assert.Equal(t, []string{"s1"}, d.carts.deleted)
	assert.Equal(t, []int64{7400}, d.metrics.submitted)
}

func TestSubmitOrder_EmptyCart(t *testing.T) {
	d := newOrderDeps()

	_, err := d.uc().SubmitOrder(context.Background(), &SubmitOrderReq{SessionID: "s1"})
	assert.ErrorIs(t, err, e.ErrEmptyCart)
	assert.Equal(t, []string{RejectEmptyCart}, d.metrics.rejected)
	assert.Zero(t, d.tx.calls)
}

func TestSubmitOrder_ShopClosed(t *testing.T) {
	d := newOrderDeps()
	d.avail.decision = domain.AvailabilityDecision{Message: "Pedidos encerrados."}
	d.fillCart(t, "s1", func(c *domain.Composer, o *domain.Order) {
		require.NoError(t, c.AddLine(o, margherita(), domain.PortionWhole, 1, nil))
	})

	_, err := d.uc().SubmitOrder(context.Background(), &SubmitOrderReq{SessionID: "s1"})
	assert.ErrorIs(t, err, e.ErrShopClosed)
	var closed *ShopClosedError
	require.True(t, errors.As(err, &closed))
	assert.Equal(t, "Pedidos encerrados.", closed.Message)
	assert.Empty(t, d.orders.created)
	assert.Len(t, d.carts.carts["s1"].Lines, 1)
}

func TestSubmitOrder_InvalidNeverReachesStorage(t *testing.T) {
	d := newOrderDeps()
	d.fillCart(t, "s1", func(c *domain.Composer, o *domain.Order) {
		require.NoError(t, c.AddLine(o, margherita(), domain.PortionHalf, 1, nil))
		require.NoError(t, c.AddLine(o, soda(), domain.PortionWhole, 1, nil))
	})

	_, err := d.uc().SubmitOrder(context.Background(), &SubmitOrderReq{SessionID: "s1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrValidationFailed)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{domain.ErrMsgNeedsWholePizza, domain.ErrMsgOddHalfUnits}, vErr.Errors)

	assert.Zero(t, d.tx.calls)
	assert.Empty(t, d.orders.created)
	assert.Empty(t, d.carts.deleted)
	assert.Equal(t, []string{RejectValidation}, d.metrics.rejected)
}

func TestSubmitOrder_StorageFailureKeepsCart(t *testing.T) {
	d := newOrderDeps()
	d.outbox.err = errStorage
	d.fillCart(t, "s1", func(c *domain.Composer, o *domain.Order) {
		require.NoError(t, c.AddLine(o, calabresa(), domain.PortionHalf, 2, nil))
	})

	_, err := d.uc().SubmitOrder(context.Background(), &SubmitOrderReq{SessionID: "s1"})
	assert.ErrorIs(t, err, errStorage)
	assert.Empty(t, d.carts.deleted)
	require.Len(t, d.carts.carts["s1"].Lines, 1)
	assert.Equal(t, domain.PortionWhole, d.carts.carts["s1"].Lines[0].Portion)
	assert.Empty(t, d.metrics.submitted)
}

func TestSubmitOrder_MissingSession(t *testing.T) {
	_, err := newOrderDeps().uc().SubmitOrder(context.Background(), &SubmitOrderReq{})
	assert.ErrorIs(t, err, e.ErrMissingSessionID)
}
