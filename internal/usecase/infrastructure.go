package usecase

import "context"

type ImagesInfra interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// EventEncoder сериализует события для outbox в формат, который потом уходит в Kafka.
type EventEncoder interface {
	EncodeOrderSubmitted(event *OrderSubmittedEvent) ([]byte, error)
}

// Metrics — счётчики бизнес-событий.
type Metrics interface {
	OrderSubmitted(total int64)
	OrderRejected(reason string)
	AvailabilityEvaluated(open bool, fallback bool)
}

type nopMetrics struct{}

func (nopMetrics) OrderSubmitted(int64)             {}
func (nopMetrics) OrderRejected(string)             {}
func (nopMetrics) AvailabilityEvaluated(bool, bool) {}
