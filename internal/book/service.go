package book

// ServiceInterface lets other packages depend on book lookups without the
// concrete service (used by cart and catalog handlers, and by tests).
type ServiceInterface interface {
	GetByISBN(isbn string) (Book, error)
	List() ([]Book, error)
	ListForOrdering() ([]StockSummary, error)
	Upsert(b Book) (Book, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByISBN(isbn string) (Book, error) {
	return s.repo.GetByISBN(isbn)
}

func (s *Service) List() ([]Book, error) {
	return s.repo.List()
}

func (s *Service) ListForOrdering() ([]StockSummary, error) {
	return s.repo.ListForOrdering()
}

func (s *Service) Upsert(b Book) (Book, error) {
	return s.repo.Upsert(b)
}

var _ ServiceInterface = (*Service)(nil)
