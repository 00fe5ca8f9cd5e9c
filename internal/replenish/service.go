package replenish

import (
	"bookstore-backend/internal/book"
)

type Service struct {
	repo  Repository
	books book.ServiceInterface
}

func NewService(repo Repository, books book.ServiceInterface) *Service {
	return &Service{repo: repo, books: books}
}

// CreateManual places a Pending publisher order for a known book.
func (s *Service) CreateManual(isbn string, qty int) (PublisherOrder, error) {
	if qty <= 0 {
		return PublisherOrder{}, ErrInvalidQuantity
	}

	b, err := s.books.GetByISBN(isbn)
	if err != nil {
		return PublisherOrder{}, err
	}

	ord, err := s.repo.Create(isbn, qty)
	if err != nil {
		return PublisherOrder{}, err
	}
	ord.Title = b.Title
	return ord, nil
}

func (s *Service) Confirm(orderID int) error {
	return s.repo.Confirm(orderID)
}

func (s *Service) List() ([]PublisherOrder, error) {
	return s.repo.List()
}

func (s *Service) BooksForOrdering() ([]book.StockSummary, error) {
	return s.books.ListForOrdering()
}
