package e

import "fmt"

var (
	// Внутренние ошибки
	ErrTransactionNotFound  = fmt.Errorf("transaction not found")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrMissingEnvVariable   = fmt.Errorf("required environment variable is not set")
	ErrInternalServerError  = fmt.Errorf("internal server error")

	// 400 Bad Request
	ErrStatusBadRequest       = fmt.Errorf("bad request")
	ErrInvalidJSON            = fmt.Errorf("invalid json body")
	ErrInvalidQuantity        = fmt.Errorf("invalid quantity")
	ErrInvalidPortion         = fmt.Errorf("invalid portion")
	ErrHalfPortionUnavailable = fmt.Errorf("half portion is available only for pizzas")
	ErrEmptyCart              = fmt.Errorf("cart is empty")
	ErrNoProducts             = fmt.Errorf("no products requested")
	ErrMissingSessionID       = fmt.Errorf("session id is required")

	// 400 Bad Request: настройки магазина
	ErrInvalidSetting   = fmt.Errorf("invalid shop setting")
	ErrWrappingSchedule = fmt.Errorf("schedule window must not wrap across the week boundary")
	ErrEmptySchedule    = fmt.Errorf("schedule window closes before it opens")

	// 401 Unauthorized
	ErrUnauthorized = fmt.Errorf("unauthorized")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrLineNotFound    = fmt.Errorf("cart line not found")

	// 409 Conflict
	ErrShopClosed = fmt.Errorf("shop is not accepting orders")

	// 422 Unprocessable Entity
	ErrValidationFailed = fmt.Errorf("order validation failed")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
