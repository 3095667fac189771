package inventory

import "github.com/shopspring/decimal"

// Stock is the available quantity for a product. A missing amount decodes as 0.
type Stock struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// Product is a catalog record. It carries no cart quantity.
type Product struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}
