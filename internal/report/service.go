package report

import (
	"errors"
	"time"

	"bookstore-backend/internal/book"
)

var ErrInvalidDate = errors.New("date is required (format: YYYY-MM-DD)")

type Service struct {
	repo  Repository
	books book.ServiceInterface
}

func NewService(repo Repository, books book.ServiceInterface) *Service {
	return &Service{repo: repo, books: books}
}

func (s *Service) SalesLastMonth() (SalesSummary, error) {
	return s.repo.SalesLastMonth()
}

func (s *Service) SalesByDate(date string) (SalesSummary, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return SalesSummary{}, ErrInvalidDate
	}
	return s.repo.SalesByDate(date)
}

func (s *Service) TopCustomers() ([]TopCustomer, error) {
	return s.repo.TopCustomers()
}

func (s *Service) TopBooks() ([]TopBook, error) {
	return s.repo.TopBooks()
}

func (s *Service) BookOrderCount(isbn string) (BookOrderCount, error) {
	count, err := s.repo.BookOrderCount(isbn)
	if err != nil {
		return BookOrderCount{}, err
	}

	title := "Unknown"
	if b, err := s.books.GetByISBN(isbn); err == nil {
		title = b.Title
	}

	return BookOrderCount{ISBN: isbn, BookTitle: title, OrderCount: count}, nil
}
