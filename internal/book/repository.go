package book

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("book not found")

type Repository interface {
	GetByISBN(isbn string) (Book, error)
	List() ([]Book, error)
	ListForOrdering() ([]StockSummary, error)
	Upsert(b Book) (Book, error)
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	books map[string]Book
}

func NewInMemoryRepository(seed []Book) *InMemoryRepository {
	r := &InMemoryRepository{books: make(map[string]Book, len(seed))}
	for _, b := range seed {
		r.books[b.ISBN] = b
	}
	return r
}

func (r *InMemoryRepository) GetByISBN(isbn string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[isbn]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *InMemoryRepository) List() ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *InMemoryRepository) ListForOrdering() ([]StockSummary, error) {
	books, err := r.List()
	if err != nil {
		return nil, err
	}

	out := make([]StockSummary, 0, len(books))
	for _, b := range books {
		out = append(out, StockSummary{ISBN: b.ISBN, Title: b.Title, StockQuantity: b.StockQuantity, Threshold: b.Threshold})
	}
	return out, nil
}

func (r *InMemoryRepository) Upsert(b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books[b.ISBN] = b
	return b, nil
}

// SetStock is a test helper for simulating concurrent stock changes.
func (r *InMemoryRepository) SetStock(isbn string, qty int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.books[isbn]; ok {
		b.StockQuantity = qty
		r.books[isbn] = b
	}
}
