package report

import "github.com/shopspring/decimal"

type SalesSummary struct {
	Period     string          `json:"period,omitempty"`
	Date       string          `json:"date,omitempty"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

type TopCustomer struct {
	UserID         int             `json:"userId"`
	Email          string          `json:"email"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
}

type TopBook struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	TotalSold int    `json:"totalSold"`
}

type BookOrderCount struct {
	ISBN       string `json:"isbn"`
	BookTitle  string `json:"bookTitle"`
	OrderCount int    `json:"orderCount"`
}
