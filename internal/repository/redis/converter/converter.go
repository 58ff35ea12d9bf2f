package converter

import "github.com/DRSN-tech/pizzeria-backend/internal/domain"

type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
	ToArrRedisModel(entities []domain.Product) []ProductRedisModel
}

type CartConverter interface {
	ToRedisModel(order *domain.Order) *CartRedisModel
	ToEntity(model *CartRedisModel) *domain.Order
}

type ProductConverterImpl struct{}

func (ProductConverterImpl) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	if entity == nil {
		return nil
	}

	return &ProductRedisModel{
		ID:            entity.ID,
		Name:          entity.Name,
		CategoryID:    entity.CategoryID,
		Category:      entity.Category,
		WholePrice:    entity.WholePrice,
		HalfPrice:     copyInt64(entity.HalfPrice),
		StockQuantity: copyInt64(entity.StockQuantity),
		PhotoKey:      entity.PhotoKey,
		IsActive:      entity.IsActive,
	}
}

func (ProductConverterImpl) ToEntity(model *ProductRedisModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:            model.ID,
		Name:          model.Name,
		CategoryID:    model.CategoryID,
		Category:      model.Category,
		WholePrice:    model.WholePrice,
		HalfPrice:     copyInt64(model.HalfPrice),
		StockQuantity: copyInt64(model.StockQuantity),
		PhotoKey:      model.PhotoKey,
		IsActive:      model.IsActive,
	}
}

func (c ProductConverterImpl) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	result := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}

	return result
}

type CartConverterImpl struct {
	Products ProductConverterImpl
}

func (c CartConverterImpl) ToRedisModel(order *domain.Order) *CartRedisModel {
	model := &CartRedisModel{Lines: make([]CartLineRedisModel, 0, len(order.Lines))}
	for i := range order.Lines {
		line := &order.Lines[i]
		model.Lines = append(model.Lines, CartLineRedisModel{
			ID:       line.ID,
			Product:  *c.Products.ToRedisModel(&line.Product),
			Portion:  string(line.Portion),
			Quantity: line.Quantity,
			Flavors:  copyStrings(line.Flavors),
		})
	}

	return model
}

func (c CartConverterImpl) ToEntity(model *CartRedisModel) *domain.Order {
	order := &domain.Order{}
	if model == nil || len(model.Lines) == 0 {
		return order
	}

	order.Lines = make([]domain.OrderLine, 0, len(model.Lines))
	for i := range model.Lines {
		line := &model.Lines[i]
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:       line.ID,
			Product:  *c.Products.ToEntity(&line.Product),
			Portion:  domain.Portion(line.Portion),
			Quantity: line.Quantity,
			Flavors:  copyStrings(line.Flavors),
		})
	}

	return order
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// copyStrings копирует срез, сохраняя разницу между nil и пустым срезом.
func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
