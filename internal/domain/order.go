package domain

import (
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/google/uuid"
)

// Portion — размер порции в строке заказа.
type Portion string

const (
	PortionWhole Portion = "whole"
	PortionHalf  Portion = "half"
)

// ParsePortion проверяет строковое значение порции.
func ParsePortion(s string) (Portion, error) {
	switch Portion(s) {
	case PortionWhole, PortionHalf:
		return Portion(s), nil
	default:
		return "", e.ErrInvalidPortion
	}
}

// OrderLine — строка собираемого заказа.
type OrderLine struct {
	ID       string
	Product  Product
	Portion  Portion
	Quantity int
	Flavors  []string // Вкусы половинок, только для отображения и сообщения
}

// Order — собираемый заказ (корзина). Порядок строк совпадает с порядком добавления.
type Order struct {
	Lines []OrderLine
}

// IsEmpty сообщает, что в заказе нет строк.
func (o *Order) IsEmpty() bool {
	return len(o.Lines) == 0
}

// Line возвращает строку по идентификатору.
func (o *Order) Line(lineID string) (OrderLine, bool) {
	if i := o.indexByID(lineID); i >= 0 {
		return o.Lines[i], true
	}
	return OrderLine{}, false
}

func (o *Order) indexByID(lineID string) int {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (o *Order) indexOf(productID int64, portion Portion) int {
	for i := range o.Lines {
		if o.Lines[i].Product.ID == productID && o.Lines[i].Portion == portion {
			return i
		}
	}
	return -1
}

func (o *Order) removeAt(i int) {
	o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
}

func (o *Order) clone() []OrderLine {
	lines := make([]OrderLine, len(o.Lines))
	for i, line := range o.Lines {
		line.Flavors = append([]string(nil), line.Flavors...)
		lines[i] = line
	}
	return lines
}

// exceedsLimit сообщает, что какая-то строка продукта вышла за MaxLineQuantity.
func (o *Order) exceedsLimit(productID int64) bool {
	for _, line := range o.Lines {
		if line.Product.ID == productID && line.Quantity > MaxLineQuantity {
			return true
		}
	}
	return false
}

// MaxLineQuantity — максимальное количество единиц в одной строке заказа,
// в том числе после склейки половинок.
const MaxLineQuantity = 99

// Composer изменяет заказ: добавляет, меняет количество, удаляет строки.
// После каждого изменения количества применяется правило склейки половинок.
type Composer struct {
	newID func() string
}

// NewComposer создаёт Composer. newID генерирует идентификаторы новых строк; nil — uuid.
func NewComposer(newID func() string) *Composer {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Composer{newID: newID}
}

// AddLine добавляет продукт в заказ. Если строка с тем же продуктом и порцией уже есть,
// увеличивает её количество, иначе добавляет новую строку в конец.
// Если итоговое количество превышает MaxLineQuantity, заказ не меняется.
func (c *Composer) AddLine(order *Order, product Product, portion Portion, quantity int, flavors []string) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return e.ErrInvalidQuantity
	}
	if _, err := ParsePortion(string(portion)); err != nil {
		return err
	}
	if portion == PortionHalf && !product.IsPizza() {
		return e.ErrHalfPortionUnavailable
	}

	if portion != PortionHalf {
		flavors = nil
	}

	i := order.indexOf(product.ID, portion)
	if i >= 0 && order.Lines[i].Quantity > MaxLineQuantity-quantity {
		return e.ErrInvalidQuantity
	}

	before := order.clone()
	if i >= 0 {
		order.Lines[i].Quantity += quantity
		order.Lines[i].Flavors = append(order.Lines[i].Flavors, flavors...)
	} else {
		order.Lines = append(order.Lines, OrderLine{
			ID:       c.newID(),
			Product:  product,
			Portion:  portion,
			Quantity: quantity,
			Flavors:  append([]string(nil), flavors...),
		})
	}

	return c.settle(order, product.ID, before)
}

// SetQuantity устанавливает количество строки. Ноль работает как RemoveLine
// и для отсутствующей строки ошибкой не считается.
func (c *Composer) SetQuantity(order *Order, lineID string, quantity int) error {
	if quantity < 0 || quantity > MaxLineQuantity {
		return e.ErrInvalidQuantity
	}

	if quantity == 0 {
		c.RemoveLine(order, lineID)
		return nil
	}

	i := order.indexByID(lineID)
	if i < 0 {
		return e.ErrLineNotFound
	}

	before := order.clone()
	order.Lines[i].Quantity = quantity
	return c.settle(order, order.Lines[i].Product.ID, before)
}

// settle склеивает половинки продукта и откатывает заказ к before,
// если после склейки строка вышла за лимит.
func (c *Composer) settle(order *Order, productID int64, before []OrderLine) error {
	c.normalize(order, productID)
	if order.exceedsLimit(productID) {
		order.Lines = before
		return e.ErrInvalidQuantity
	}
	return nil
}

// RemoveLine удаляет строку; отсутствующая строка не считается ошибкой.
func (c *Composer) RemoveLine(order *Order, lineID string) {
	if i := order.indexByID(lineID); i >= 0 {
		order.removeAt(i)
	}
}

// Clear очищает заказ после успешной отправки.
func (c *Composer) Clear(order *Order) {
	order.Lines = nil
}
