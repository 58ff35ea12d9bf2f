package domain

// Normalize применяет правило склейки половинок ко всем пиццам заказа.
// Повторный вызов на нормализованном заказе ничего не меняет.
func (c *Composer) Normalize(order *Order) {
	seen := make(map[int64]struct{}, len(order.Lines))
	for _, line := range append([]OrderLine(nil), order.Lines...) {
		if _, ok := seen[line.Product.ID]; ok {
			continue
		}
		seen[line.Product.ID] = struct{}{}
		c.normalize(order, line.Product.ID)
	}
}

// normalize складывает пары половинок одного продукта в целые пиццы того же продукта.
// Половинки разных продуктов между собой не склеиваются.
func (c *Composer) normalize(order *Order, productID int64) {
	hi := order.indexOf(productID, PortionHalf)
	if hi < 0 {
		return
	}

	half := order.Lines[hi]
	if !half.Product.IsPizza() || half.Quantity < 2 {
		return
	}

	pairs := half.Quantity / 2
	remainder := half.Quantity % 2

	if remainder == 0 {
		order.removeAt(hi)
	} else {
		order.Lines[hi].Quantity = remainder
		order.Lines[hi].Flavors = trailing(half.Flavors, remainder)
	}

	if wi := order.indexOf(productID, PortionWhole); wi >= 0 {
		order.Lines[wi].Quantity += pairs
		return
	}

	order.Lines = append(order.Lines, OrderLine{
		ID:       c.newID(),
		Product:  half.Product,
		Portion:  PortionWhole,
		Quantity: pairs,
		Flavors:  []string{},
	})
}

// trailing возвращает копию последних n элементов.
func trailing(s []string, n int) []string {
	if len(s) <= n {
		return append([]string(nil), s...)
	}
	return append([]string(nil), s[len(s)-n:]...)
}
