package domain

const (
	ErrMsgNeedsWholePizza = "needs at least one whole pizza (or two halves)"
	ErrMsgOddHalfUnits    = "odd number of half units"
	ErrMsgQuantityLimit   = "line quantity exceeds the limit"
	ErrMsgTotalOverflow   = "order total is too large"
)

// ValidationResult — результат проверки заказа перед отправкой.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate проверяет бизнес-ограничения заказа.
// Порядок ошибок фиксирован: полнота пиццы, чётность половинок, лимит количества, итог.
func Validate(order Order) ValidationResult {
	var (
		wholes    int
		halves    int
		oddHalf   bool
		overLimit bool
	)

	for _, line := range order.Lines {
		if line.Quantity > MaxLineQuantity {
			overLimit = true
		}
		if !line.Product.IsPizza() {
			continue
		}

		switch line.Portion {
		case PortionWhole:
			wholes += line.Quantity
		case PortionHalf:
			halves += line.Quantity
			if line.Quantity%2 != 0 {
				oddHalf = true
			}
		}
	}

	errors := make([]string, 0, 4)
	// wholes + halves/2 < 1, в целых половинках
	if 2*wholes+halves < 2 {
		errors = append(errors, ErrMsgNeedsWholePizza)
	}
	if oddHalf {
		errors = append(errors, ErrMsgOddHalfUnits)
	}
	if overLimit {
		errors = append(errors, ErrMsgQuantityLimit)
	}
	if _, ok := orderTotal(order); !ok {
		errors = append(errors, ErrMsgTotalOverflow)
	}

	return ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}
