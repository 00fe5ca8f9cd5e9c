package cart

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrItemNotFound      = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient stock available")
	ErrInvalidQuantity   = errors.New("valid quantity is required")
)

type Repository interface {
	// GetQuantity reports the quantity already carted for a book; zero
	// with a nil error when the cart or line does not exist.
	GetQuantity(userID int, isbn string) (int, error)
	// AddItem lazily creates the user's cart, then inserts the line or
	// increments an existing one.
	AddItem(userID int, isbn string, qty int) error
	SetQuantity(userID int, isbn string, qty int) error
	RemoveItem(userID int, isbn string) error
	ListItems(userID int) ([]ItemRow, error)
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int]map[string]int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int]map[string]int)}
}

func (r *InMemoryRepository) GetQuantity(userID int, isbn string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.carts[userID][isbn], nil
}

func (r *InMemoryRepository) AddItem(userID int, isbn string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.carts[userID] == nil {
		r.carts[userID] = make(map[string]int)
	}
	r.carts[userID][isbn] += qty
	return nil
}

func (r *InMemoryRepository) SetQuantity(userID int, isbn string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.carts[userID]
	if !ok {
		return ErrCartNotFound
	}
	if _, ok := items[isbn]; !ok {
		return ErrItemNotFound
	}
	items[isbn] = qty
	return nil
}

func (r *InMemoryRepository) RemoveItem(userID int, isbn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.carts[userID]
	if !ok {
		return ErrCartNotFound
	}
	if _, ok := items[isbn]; !ok {
		return ErrItemNotFound
	}
	delete(items, isbn)
	return nil
}

func (r *InMemoryRepository) ListItems(userID int) ([]ItemRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.carts[userID]
	out := make([]ItemRow, 0, len(items))
	for isbn, qty := range items {
		out = append(out, ItemRow{ISBN: isbn, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ISBN < out[j].ISBN })
	return out, nil
}
