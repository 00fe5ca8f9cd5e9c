package cart

import (
	"github.com/shopspring/decimal"

	"bookstore-backend/internal/book"
)

// Service orchestrates cart mutations. Stock is checked against the local
// book rows at mutation time; checkout re-checks under a row lock, so these
// checks only keep carts honest between requests.
type Service struct {
	repo  Repository
	books book.ServiceInterface
}

func NewService(repo Repository, books book.ServiceInterface) *Service {
	return &Service{repo: repo, books: books}
}

func (s *Service) AddItem(userID int, isbn string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	b, err := s.books.GetByISBN(isbn)
	if err != nil {
		return err
	}

	existing, err := s.repo.GetQuantity(userID, isbn)
	if err != nil {
		return err
	}
	if existing+qty > b.StockQuantity {
		return ErrInsufficientStock
	}

	return s.repo.AddItem(userID, isbn, qty)
}

func (s *Service) SetQuantity(userID int, isbn string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	b, err := s.books.GetByISBN(isbn)
	if err != nil {
		return err
	}
	if qty > b.StockQuantity {
		return ErrInsufficientStock
	}

	return s.repo.SetQuantity(userID, isbn, qty)
}

func (s *Service) RemoveItem(userID int, isbn string) error {
	return s.repo.RemoveItem(userID, isbn)
}

func (s *Service) View(userID int) (View, error) {
	rows, err := s.repo.ListItems(userID)
	if err != nil {
		return View{}, err
	}

	items := make([]Item, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		b, err := s.books.GetByISBN(row.ISBN)
		if err != nil {
			return View{}, err
		}

		lineTotal := b.Price.Mul(decimal.NewFromInt(int64(row.Quantity)))
		items = append(items, Item{
			ISBN:      row.ISBN,
			Title:     b.Title,
			Authors:   b.Authors,
			Price:     b.Price,
			Quantity:  row.Quantity,
			ItemTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return View{Items: items, Total: total.StringFixed(2)}, nil
}
