package kafka

import (
	"strconv"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EventEncoder сериализует события заказов в google.protobuf.Struct.
type EventEncoder struct{}

func NewEventEncoder() *EventEncoder {
	return &EventEncoder{}
}

func (EventEncoder) EncodeOrderSubmitted(event *usecase.OrderSubmittedEvent) ([]byte, error) {
	lines := make([]any, 0, len(event.Lines))
	for _, line := range event.Lines {
		flavors := make([]any, 0, len(line.Flavors))
		for _, f := range line.Flavors {
			flavors = append(flavors, f)
		}

		lines = append(lines, map[string]any{
			"product_id": strconv.FormatInt(line.ProductID, 10),
			"portion":    string(line.Portion),
			"quantity":   line.Quantity,
			"unit_price": strconv.FormatInt(line.UnitPriceUsed, 10),
			"flavors":    flavors,
		})
	}

	// int64 передаются строками: в Struct числа хранятся как double
	payload, err := structpb.NewStruct(map[string]any{
		"event_id":       event.EventID,
		"event_type":     string(usecase.OrderSubmittedEventType),
		"order_id":       strconv.FormatInt(event.OrderID, 10),
		"total":          strconv.FormatInt(event.Total, 10),
		"contact_number": event.ContactNumber,
		"submitted_at":   event.SubmittedAt.UTC().Format(time.RFC3339),
		"lines":          lines,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := proto.Marshal(payload)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}
