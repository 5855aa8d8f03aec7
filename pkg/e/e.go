package e

import "fmt"

var (
	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// Ошибки каталога
	ErrCatalogFetch    = fmt.Errorf("catalog fetch failed")
	ErrCatalogNotReady = fmt.Errorf("catalog is not loaded yet")
	ErrProductNotFound = fmt.Errorf("product not found")

	// Ошибки спецификации запроса каталога
	ErrInvalidPageSize = fmt.Errorf("page size must be positive")
	ErrInvalidSortKey  = fmt.Errorf("unknown sort key")
	ErrInvalidCategory = fmt.Errorf("unknown category")

	// Нарушение инварианта склада. Reconciler обязан проверить остатки до коммита,
	// поэтому в нормальной работе эта ошибка недостижима.
	ErrInsufficientStock = fmt.Errorf("insufficient stock")

	// Ошибки оформления заказа
	ErrCartEmpty = fmt.Errorf("cart is empty")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrInvalidPrice     = fmt.Errorf("invalid price")
	ErrPricePrecision   = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidProductID = fmt.Errorf("invalid product id")
	ErrInvalidQty       = fmt.Errorf("invalid quantity")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
