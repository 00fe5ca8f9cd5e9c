package order

// Repository defines persistence for the order workflow. Checkout is a
// single atomic unit: on any error no order, stock or cart write survives.
type Repository interface {
	Checkout(userID int) (Receipt, error)
	ListByUser(userID int) ([]Order, error)
}
