package replenish

// Publisher order statuses. Pending → Confirmed is one-way.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
)

// PublisherOrder is a restock request to the publisher. Confirming it adds
// the ordered quantity to the book's stock.
type PublisherOrder struct {
	OrderID   int    `json:"order_id"`
	ISBN      string `json:"isbn"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	OrderDate string `json:"order_date,omitempty"`
	Status    string `json:"order_status"`
}
