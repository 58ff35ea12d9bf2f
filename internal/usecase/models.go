package usecase

import (
	"strings"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
)

// Clock возвращает текущий момент. Подменяется в тестах.
type Clock func() time.Time

// PRODUCT USECASE

// GetProductsReq запрос информации о продуктах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных продуктов.
type GetProductsRes struct {
	Products         []domain.Product
	NotFoundProducts []int64
}

// ProductView — продукт каталога со ссылкой на фото.
type ProductView struct {
	Product  domain.Product
	PhotoURL string
}

// CART USECASE

// AddCartItemReq — запрос на добавление продукта в корзину.
type AddCartItemReq struct {
	SessionID string
	ProductID int64
	Portion   domain.Portion
	Quantity  int
	Flavors   []string
}

// SetCartQuantityReq — запрос на изменение количества строки корзины.
type SetCartQuantityReq struct {
	SessionID string
	LineID    string
	Quantity  int
}

// CartLineView — строка корзины с рассчитанными ценами.
type CartLineView struct {
	Line      domain.OrderLine
	UnitPrice int64
	LineTotal int64
}

// CartView — состояние корзины для отображения.
type CartView struct {
	SessionID  string
	Lines      []CartLineView
	Total      int64
	Validation domain.ValidationResult
}

// ORDER USECASE

// SubmitOrderReq — запрос на отправку заказа из корзины сессии.
type SubmitOrderReq struct {
	SessionID string
}

// SubmitOrderRes — результат успешной отправки заказа.
type SubmitOrderRes struct {
	OrderID     int64
	EventID     string
	Total       int64
	Message     string
	WhatsAppURL string
}

// ValidationError — заказ не прошёл бизнес-проверки и не был отправлен.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return e.ErrValidationFailed.Error() + ": " + strings.Join(v.Errors, "; ")
}

func (v *ValidationError) Unwrap() error {
	return e.ErrValidationFailed
}

// ShopClosedError — магазин сейчас не принимает заказы. Message показывается покупателю.
type ShopClosedError struct {
	Message string
}

func (s *ShopClosedError) Error() string {
	if s.Message == "" {
		return e.ErrShopClosed.Error()
	}
	return e.ErrShopClosed.Error() + ": " + s.Message
}

func (s *ShopClosedError) Unwrap() error {
	return e.ErrShopClosed
}

// REPOSITORIES

// SubmittedLine — строка заказа в том виде, в котором она уходит в хранилище.
type SubmittedLine struct {
	ProductID     int64
	Portion       domain.Portion
	Quantity      int
	Flavors       []string
	UnitPriceUsed int64
}

// OrderSubmission — заказ, передаваемый во внешнее хранилище.
type OrderSubmission struct {
	Lines         []SubmittedLine
	Total         int64
	ContactNumber string
	Message       string
}

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderSubmittedEventType OutboxEventType = "order.submitted"
)

// OutboxEvent — событие, ожидающее публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	Attempts    int
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderSubmittedEvent — содержимое события об отправленном заказе.
type OrderSubmittedEvent struct {
	EventID       string
	OrderID       int64
	Total         int64
	ContactNumber string
	Lines         []SubmittedLine
	SubmittedAt   time.Time
}

// INFRASTUCTURE

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
	Headers map[string]string
}

// MAPPERS

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(pr []domain.Product, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         pr,
		NotFoundProducts: notFoundProducts,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

// NewCartView рассчитывает цены и результат проверки для корзины.
func NewCartView(sessionID string, order *domain.Order) *CartView {
	lines := make([]CartLineView, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, CartLineView{
			Line:      line,
			UnitPrice: domain.UnitPrice(line),
			LineTotal: domain.LineTotal(line),
		})
	}

	return &CartView{
		SessionID:  sessionID,
		Lines:      lines,
		Total:      domain.Total(*order),
		Validation: domain.Validate(*order),
	}
}

// NewOrderSubmission собирает данные заказа для отправки.
func NewOrderSubmission(order *domain.Order, contactNumber string) *OrderSubmission {
	lines := make([]SubmittedLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, SubmittedLine{
			ProductID:     line.Product.ID,
			Portion:       line.Portion,
			Quantity:      line.Quantity,
			Flavors:       append([]string(nil), line.Flavors...),
			UnitPriceUsed: domain.UnitPrice(line),
		})
	}

	return &OrderSubmission{
		Lines:         lines,
		Total:         domain.Total(*order),
		ContactNumber: contactNumber,
		Message:       domain.WhatsAppMessage(*order),
	}
}
