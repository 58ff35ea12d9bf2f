package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/google/uuid"
)

// Причины отказа в отправке заказа для метрик.
const (
	RejectEmptyCart  = "empty_cart"
	RejectShopClosed = "shop_closed"
	RejectValidation = "validation"
)

// OrderUseCase отправляет собранную корзину как заказ.
type OrderUseCase struct {
	cartRepo      CartRepository
	orderRepo     OrderRepository
	productRepo   ProductRepository
	cacheRepo     CacheRepository
	outboxRepo    OutboxRepository
	txManager     TxManager
	availability  AvailabilityUC
	encoder       EventEncoder
	clock         Clock
	metrics       Metrics
	contactNumber string
	logger        logger.Logger
}

func NewOrderUC(
	cartRepo CartRepository,
	orderRepo OrderRepository,
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	availability AvailabilityUC,
	encoder EventEncoder,
	clock Clock,
	metrics Metrics,
	contactNumber string,
	logger logger.Logger,
) *OrderUseCase {
	if clock == nil {
		clock = time.Now
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &OrderUseCase{
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		cacheRepo:     cacheRepo,
		outboxRepo:    outboxRepo,
		txManager:     txManager,
		availability:  availability,
		encoder:       encoder,
		clock:         clock,
		metrics:       metrics,
		contactNumber: contactNumber,
		logger:        logger,
	}
}

// SubmitOrder проверяет корзину и доступность магазина, сохраняет заказ вместе с событием
// в outbox и очищает корзину. При любой ошибке корзина остаётся без изменений.
func (o *OrderUseCase) SubmitOrder(ctx context.Context, req *SubmitOrderReq) (*SubmitOrderRes, error) {
	const op = "OrderUseCase.SubmitOrder"

	if req.SessionID == "" {
		return nil, e.Wrap(op, e.ErrMissingSessionID)
	}

	order, err := o.cartRepo.Get(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if order.IsEmpty() {
		o.metrics.OrderRejected(RejectEmptyCart)
		return nil, e.Wrap(op, e.ErrEmptyCart)
	}

	decision := o.availability.Check(ctx)
	if !decision.IsOpen {
		o.metrics.OrderRejected(RejectShopClosed)
		return nil, &ShopClosedError{Message: decision.Message}
	}

	validation := domain.Validate(*order)
	if !validation.Valid {
		o.metrics.OrderRejected(RejectValidation)
		return nil, &ValidationError{Errors: validation.Errors}
	}

	submission := NewOrderSubmission(order, o.contactNumber)
	eventID := uuid.NewString()

	var (
		orderID int64
		stocked []int64
	)
	for _, line := range order.Lines {
		if line.Product.HasTrackedStock() {
			stocked = append(stocked, line.Product.ID)
		}
	}

	err = o.txManager.Do(ctx, func(ctx context.Context) error {
		orderID, err = o.orderRepo.Create(ctx, submission)
		if err != nil {
			return err
		}

		// Остатки уменьшаются только у продуктов с учётом склада
		for _, line := range order.Lines {
			if !line.Product.HasTrackedStock() {
				continue
			}
			if err := o.productRepo.DecrementStock(ctx, line.Product.ID, line.Quantity); err != nil {
				return err
			}
		}

		payload, err := o.encoder.EncodeOrderSubmitted(&OrderSubmittedEvent{
			EventID:       eventID,
			OrderID:       orderID,
			Total:         submission.Total,
			ContactNumber: submission.ContactNumber,
			Lines:         submission.Lines,
			SubmittedAt:   o.clock(),
		})
		if err != nil {
			return err
		}

		_, err = o.outboxRepo.Create(ctx, &OutboxEvent{
			EventID:   eventID,
			EventType: OrderSubmittedEventType,
			OrderID:   orderID,
			Payload:   payload,
			Status:    Pending,
			CreatedAt: o.clock(),
		})
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Заказ уже сохранён, поэтому ошибки ниже только логируются
	if err := o.cartRepo.Delete(ctx, req.SessionID); err != nil {
		o.logger.Warnf("Failed to clear cart after order %d: %v", orderID, e.Wrap(op, err))
	}
	if len(stocked) > 0 {
		if err := o.cacheRepo.DeleteProducts(ctx, stocked); err != nil {
			o.logger.Warnf("Failed to drop cached stock after order %d: %v", orderID, e.Wrap(op, err))
		}
	}

	o.metrics.OrderSubmitted(submission.Total)
	o.logger.Infof("Order %d submitted, total %s", orderID, domain.FormatBRL(submission.Total))

	return &SubmitOrderRes{
		OrderID:     orderID,
		EventID:     eventID,
		Total:       submission.Total,
		Message:     submission.Message,
		WhatsAppURL: domain.WhatsAppURL(o.contactNumber, submission.Message),
	}, nil
}
