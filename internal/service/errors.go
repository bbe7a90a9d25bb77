package service

import "errors"

var (
	// ErrNotFound covers both "does not exist" and "belongs to another owner";
	// callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrProductNotFound is returned when a cart references a product that
	// does not exist for the owner. No partial sale is created.
	ErrProductNotFound = errors.New("product not found or not available")

	ErrInvalidID = errors.New("invalid id format")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrCustomerEmailTaken = errors.New("a customer with this email already exists")
)

// StockShortfall describes one cart line whose requested quantity exceeds
// the available stock.
type StockShortfall struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// InsufficientStockError lists every offending cart line, not just the first.
// When it is returned, no stock was mutated and no sale was persisted.
type InsufficientStockError struct {
	Items []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for one or more items"
}
