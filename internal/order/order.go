package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty")

// InsufficientStockError names the book that blocked a checkout.
type InsufficientStockError struct {
	Title string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book: %s", e.Title)
}

// Order is an immutable purchase record with frozen per-item prices.
type Order struct {
	OrderID    int             `json:"order_id"`
	OrderDate  string          `json:"order_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []Item          `json:"items"`
}

// Item snapshots one line of a purchase. PriceAtPurchase never changes,
// whatever happens to the catalog price later.
type Item struct {
	ISBN            string          `json:"isbn"`
	Title           string          `json:"title"`
	Authors         string          `json:"authors,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	ItemTotal       decimal.Decimal `json:"item_total"`
}

// Receipt is what a successful checkout hands back.
type Receipt struct {
	OrderID int
	Total   decimal.Decimal
}
