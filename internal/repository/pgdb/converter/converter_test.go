package converter

import (
	"testing"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductConverter_OptionalColumns(t *testing.T) {
	conv := ProductConverterImpl{}
	half := int64(2800)

	model := &ProductModel{ID: 1, Name: "Margherita", CategorySlug: domain.CategoryPizza, WholePrice: 5000, HalfPrice: &half}
	entity := conv.ToEntity(model)

	require.NotNil(t, entity.HalfPrice)
	assert.Equal(t, int64(2800), *entity.HalfPrice)
	assert.Nil(t, entity.StockQuantity)
	assert.Empty(t, entity.PhotoKey)
	assert.True(t, entity.IsActive)
	assert.True(t, entity.IsPizza())

	// Указатели не разделяются между моделью и сущностью
	half = 1
	assert.Equal(t, int64(2800), *entity.HalfPrice)

	entity.PhotoKey = "pizza/1.jpg"
	entity.IsActive = false
	back := conv.ToModel(entity)
	require.NotNil(t, back.PhotoKey)
	assert.Equal(t, "pizza/1.jpg", *back.PhotoKey)
	assert.True(t, back.IsArchived)
}

func TestOutboxEventConverter(t *testing.T) {
	conv := OutboxEventConverterImpl{}
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	entity := &usecase.OutboxEvent{
		EventID:   "ev-1",
		EventType: usecase.OrderSubmittedEventType,
		OrderID:   7,
		Payload:   []byte{1, 2},
		Status:    usecase.Pending,
		CreatedAt: now,
	}

	model := conv.ToModel(entity)
	assert.Equal(t, "order.submitted", model.EventType)
	assert.Equal(t, "pending", model.Status)

	assert.Equal(t, entity, conv.ToEntity(model))
	assert.Len(t, conv.ToArrEntity([]*OutboxEventModel{model, model}), 2)
	assert.Nil(t, conv.ToArrEntity(nil))
}
