package book

import "github.com/shopspring/decimal"

// Book is the normalized book shape used across the app. Rows in the local
// `books` table carry the stock the store actually owns; the catalog gateway
// produces the same shape for books fetched live.
type Book struct {
	ISBN            string          `json:"isbn"`
	Title           string          `json:"title"`
	Authors         string          `json:"authors"`
	Publisher       string          `json:"publisher_name,omitempty"`
	PublicationYear *int            `json:"publication_year,omitempty"`
	Category        string          `json:"category,omitempty"`
	Description     string          `json:"description,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Price           decimal.Decimal `json:"price"`
	StockQuantity   int             `json:"stock_quantity"`
	Threshold       int             `json:"threshold"`
	Available       bool            `json:"available"`
}

// StockSummary is the trimmed shape used by the admin ordering dropdown.
type StockSummary struct {
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	StockQuantity int    `json:"stock_quantity"`
	Threshold     int    `json:"threshold"`
}

// Categories supported by the storefront; gateway results are mapped into
// one of these buckets.
var Categories = []string{
	"Science",
	"Art",
	"Religion",
	"History",
	"Geography",
}
