package replenish

import (
	"errors"
	"sync"
	"time"

	"bookstore-backend/internal/book"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrAlreadyConfirmed = errors.New("order already confirmed")
	ErrInvalidQuantity  = errors.New("valid quantity is required")
)

type Repository interface {
	Create(isbn string, qty int) (PublisherOrder, error)
	// Confirm flips the order to Confirmed and adds its quantity to the
	// book's stock in one atomic unit.
	Confirm(orderID int) error
	List() ([]PublisherOrder, error)
}

// InMemoryRepository backs tests and local scenarios. Stock bumps go through
// the in-memory book repository.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders []PublisherOrder
	nextID int
	books  *book.InMemoryRepository
}

func NewInMemoryRepository(books *book.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, books: books}
}

func (r *InMemoryRepository) Create(isbn string, qty int) (PublisherOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord := PublisherOrder{
		OrderID:   r.nextID,
		ISBN:      isbn,
		Quantity:  qty,
		OrderDate: time.Now().UTC().Format(time.RFC3339),
		Status:    StatusPending,
	}
	r.nextID++
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) Confirm(orderID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.OrderID != orderID {
			continue
		}
		if ord.Status == StatusConfirmed {
			return ErrAlreadyConfirmed
		}

		b, err := r.books.GetByISBN(ord.ISBN)
		if err != nil {
			return err
		}
		b.StockQuantity += ord.Quantity
		if _, err := r.books.Upsert(b); err != nil {
			return err
		}

		r.orders[i].Status = StatusConfirmed
		return nil
	}

	return ErrNotFound
}

func (r *InMemoryRepository) List() ([]PublisherOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PublisherOrder, len(r.orders))
	copy(out, r.orders)
	return out, nil
}
