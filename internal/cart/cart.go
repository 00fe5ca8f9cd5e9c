package cart

import "github.com/shopspring/decimal"

// ItemRow is what the repository stores per cart line.
type ItemRow struct {
	ISBN     string
	Quantity int
}

// Item is a cart line enriched with book details and a computed line total.
type Item struct {
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Authors   string          `json:"authors"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ItemTotal decimal.Decimal `json:"item_total"`
}

// View is the cart as the client sees it. Total is rounded to two decimals
// for display; line math stays exact.
type View struct {
	Items []Item `json:"cartItems"`
	Total string `json:"total"`
}
