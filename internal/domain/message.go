package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppMessage формирует текст заказа для отправки в WhatsApp: сначала пиццы, затем остальные позиции.
func WhatsAppMessage(order Order) string {
	var (
		b      strings.Builder
		pizzas []OrderLine
		others []OrderLine
	)

	for _, line := range order.Lines {
		if line.Product.IsPizza() {
			pizzas = append(pizzas, line)
		} else {
			others = append(others, line)
		}
	}

	b.WriteString("*Olá! Gostaria de fazer um pedido:*\n\n")

	if len(pizzas) > 0 {
		b.WriteString("🍕 *PIZZAS*\n")
		for _, p := range pizzas {
			label := "Inteira"
			if p.Portion == PortionHalf {
				label = "Meia"
			}
			fmt.Fprintf(&b, "%dx %s: %s\n", p.Quantity, label, p.Product.Name)
		}
	}

	if len(others) > 0 {
		b.WriteString("\n📦 *OUTROS ITENS*\n")
		for _, o := range others {
			fmt.Fprintf(&b, "%dx %s\n", o.Quantity, o.Product.Name)
		}
	}

	fmt.Fprintf(&b, "\n*Total: %s*", FormatBRL(Total(order)))
	return b.String()
}

// WhatsAppURL возвращает ссылку wa.me с заранее заполненным текстом.
func WhatsAppURL(number string, message string) string {
	// wa.me не декодирует "+" как пробел
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + number + "?text=" + text
}
