package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
)

var errStorage = errors.New("storage unavailable")

func priceRef(v int64) *int64 { return &v }

func margherita() domain.Product {
	p := domain.NewProduct(1, "Margherita", domain.CategoryPizza, 5000)
	p.HalfPrice = priceRef(2800)
	p.PhotoKey = "pizza/margherita.jpg"
	return *p
}

func calabresa() domain.Product {
	p := domain.NewProduct(2, "Calabresa", domain.CategoryPizza, 5500)
	p.HalfPrice = priceRef(3000)
	return *p
}

func soda() domain.Product {
	p := domain.NewProduct(10, "Guaraná 2L", "drinks", 1200)
	p.StockQuantity = priceRef(20)
	return *p
}

func seqComposer() *domain.Composer {
	n := 0
	return domain.NewComposer(func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	})
}

// fakeProductRepo

type fakeProductRepo struct {
	mu          sync.Mutex
	products    map[int64]domain.Product
	getCalls    [][]int64
	decremented map[int64]int
	err         error
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[int64]domain.Product{}, decremented: map[int64]int{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls = append(r.getCalls, append([]int64(nil), ids...))
	if r.err != nil {
		return nil, r.err
	}
	var res []domain.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *fakeProductRepo) ListActive(context.Context) ([]domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var res []domain.Product
	for id := int64(0); id <= 100; id++ {
		if p, ok := r.products[id]; ok && p.IsActive {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, productID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.decremented[productID] += quantity
	return nil
}

// fakeCategoryRepo

type fakeCategoryRepo struct {
	categories []domain.Category
	err        error
}

func (r *fakeCategoryRepo) List(context.Context) ([]domain.Category, error) {
	return r.categories, r.err
}

// fakeCacheRepo

type fakeCacheRepo struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	getErr   error
	setCalls int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{products: map[int64]domain.Product{}}
}

func (c *fakeCacheRepo) GetProducts(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	res := map[int64]domain.Product{}
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			res[id] = p
		}
	}
	return res, nil
}

func (c *fakeCacheRepo) SetProducts(_ context.Context, products []domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	for _, p := range products {
		c.products[p.ID] = p
	}
	return nil
}

func (c *fakeCacheRepo) DeleteProducts(_ context.Context, ids []int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.products, id)
	}
	return nil
}

func (c *fakeCacheRepo) cached(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.products[id]
	return ok
}

// fakeCartRepo

type fakeCartRepo struct {
	carts   map[string]domain.Order
	saveErr error
	deleted []string
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]domain.Order{}}
}

func (r *fakeCartRepo) Get(_ context.Context, sessionID string) (*domain.Order, error) {
	o := r.carts[sessionID]
	return &domain.Order{Lines: append([]domain.OrderLine(nil), o.Lines...)}, nil
}

func (r *fakeCartRepo) Save(_ context.Context, sessionID string, order *domain.Order) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.carts[sessionID] = domain.Order{Lines: append([]domain.OrderLine(nil), order.Lines...)}
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, sessionID string) error {
	r.deleted = append(r.deleted, sessionID)
	delete(r.carts, sessionID)
	return nil
}

// fakeSettingsRepo

type fakeSettingsRepo struct {
	values map[string]string
	err    error
}

func (r *fakeSettingsRepo) GetAll(context.Context) (map[string]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.values, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, values map[string]string) error {
	if r.err != nil {
		return r.err
	}
	if r.values == nil {
		r.values = map[string]string{}
	}
	for k, v := range values {
		r.values[k] = v
	}
	return nil
}

// fakeOrderRepo

type fakeOrderRepo struct {
	created []*OrderSubmission
	nextID  int64
	err     error
}

func (r *fakeOrderRepo) Create(_ context.Context, order *OrderSubmission) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.nextID++
	r.created = append(r.created, order)
	return r.nextID, nil
}

// fakeOutboxRepo

type fakeOutboxRepo struct {
	events []*OutboxEvent
	err    error
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(context.Context, int64) error { return nil }
func (r *fakeOutboxRepo) MarkAsPending(context.Context, int64) error   { return nil }

// fakeTxManager выполняет fn без транзакции и считает вызовы.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// fakeImages

type fakeImages struct {
	err error
}

func (f *fakeImages) PresignedURL(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.local/" + key + "?sig=1", nil
}

// fakeEncoder

type fakeEncoder struct {
	events []*OrderSubmittedEvent
}

func (f *fakeEncoder) EncodeOrderSubmitted(event *OrderSubmittedEvent) ([]byte, error) {
	f.events = append(f.events, event)
	return []byte(event.EventID), nil
}

// fakeMetrics

type fakeMetrics struct {
	submitted []int64
	rejected  []string
	fallbacks int
}

func (m *fakeMetrics) OrderSubmitted(total int64) { m.submitted = append(m.submitted, total) }
func (m *fakeMetrics) OrderRejected(reason string) {
	m.rejected = append(m.rejected, reason)
}
func (m *fakeMetrics) AvailabilityEvaluated(_ bool, fallback bool) {
	if fallback {
		m.fallbacks++
	}
}

// fakeAvailability

type fakeAvailability struct {
	decision domain.AvailabilityDecision
}

func (f *fakeAvailability) Check(context.Context) domain.AvailabilityDecision { return f.decision }

func (f *fakeAvailability) GetSettings(context.Context) (*domain.ShopSettings, error) {
	s := domain.DefaultShopSettings()
	return &s, nil
}

func (f *fakeAvailability) UpdateSettings(_ context.Context, s domain.ShopSettings) (*domain.ShopSettings, error) {
	return &s, nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
