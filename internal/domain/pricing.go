package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitPrice возвращает цену одной единицы строки в центах.
// Для половинки без цены возвращается 0.
func UnitPrice(line OrderLine) int64 {
	if line.Portion == PortionHalf {
		if line.Product.HalfPrice == nil {
			return 0
		}
		return *line.Product.HalfPrice
	}
	return line.Product.WholePrice
}

// LineTotal возвращает стоимость строки в центах.
// При переполнении возвращается math.MaxInt64.
func LineTotal(line OrderLine) int64 {
	total, _ := lineTotal(line)
	return total
}

// Total возвращает итоговую стоимость заказа в центах.
// При переполнении возвращается math.MaxInt64.
func Total(order Order) int64 {
	total, _ := orderTotal(order)
	return total
}

func lineTotal(line OrderLine) (int64, bool) {
	q, price := int64(line.Quantity), UnitPrice(line)
	if q <= 0 || price <= 0 {
		return 0, true
	}
	if price > math.MaxInt64/q {
		return math.MaxInt64, false
	}
	return q * price, true
}

// orderTotal суммирует строки; ok == false, если сумма не помещается в int64.
func orderTotal(order Order) (total int64, ok bool) {
	for _, line := range order.Lines {
		sum, fits := lineTotal(line)
		if !fits || sum > math.MaxInt64-total {
			return math.MaxInt64, false
		}
		total += sum
	}
	return total, true
}

// FormatBRL форматирует сумму в центах как "R$ 1.234,50".
func FormatBRL(cents int64) string {
	amount := decimal.New(cents, -2).StringFixed(2)

	intPart, frac, _ := strings.Cut(amount, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return sign + "R$ " + b.String() + "," + frac
}
