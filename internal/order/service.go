package order

// Service runs the order workflow. Payment details are validated before any
// write; the repository handles atomicity from there.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Checkout(userID int, cardNumber, expiryDate string) (Receipt, error) {
	if err := ValidatePayment(cardNumber, expiryDate); err != nil {
		return Receipt{}, err
	}
	return s.repo.Checkout(userID)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}
