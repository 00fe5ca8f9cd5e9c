package report

import (
	"database/sql"
)

type Repository interface {
	SalesLastMonth() (SalesSummary, error)
	SalesByDate(date string) (SalesSummary, error)
	TopCustomers() ([]TopCustomer, error)
	TopBooks() ([]TopBook, error)
	BookOrderCount(isbn string) (int, error)
}

type PostgresRepository struct {
	db *sql.DB
}

const (
	salesLastMonthQuery = `
		SELECT COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE order_date >= CURRENT_DATE - INTERVAL '1 month'
		  AND order_date < CURRENT_DATE
	`
	salesByDateQuery = `
		SELECT COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE order_date::date = $1::date
	`
	topCustomersQuery = `
		SELECT u.user_id, u.email, u.first_name, u.last_name, SUM(o.total_price) AS total_purchases
		FROM users u
		JOIN orders o ON u.user_id = o.user_id
		WHERE o.order_date >= CURRENT_DATE - INTERVAL '3 months'
		GROUP BY u.user_id, u.email, u.first_name, u.last_name
		ORDER BY total_purchases DESC
		LIMIT 5
	`
	topBooksQuery = `
		SELECT b.isbn, b.title, SUM(oi.quantity) AS total_sold
		FROM books b
		JOIN order_items oi ON b.isbn = oi.isbn
		JOIN orders o ON oi.order_id = o.order_id
		WHERE o.order_date >= CURRENT_DATE - INTERVAL '3 months'
		GROUP BY b.isbn, b.title
		ORDER BY total_sold DESC
		LIMIT 10
	`
	bookOrderCountQuery = `SELECT COUNT(*) FROM publisher_orders WHERE isbn = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SalesLastMonth() (SalesSummary, error) {
	s := SalesSummary{Period: "Last month"}
	if err := r.db.QueryRow(salesLastMonthQuery).Scan(&s.TotalSales); err != nil {
		return SalesSummary{}, err
	}
	return s, nil
}

func (r *PostgresRepository) SalesByDate(date string) (SalesSummary, error) {
	s := SalesSummary{Date: date}
	if err := r.db.QueryRow(salesByDateQuery, date).Scan(&s.TotalSales); err != nil {
		return SalesSummary{}, err
	}
	return s, nil
}

func (r *PostgresRepository) TopCustomers() ([]TopCustomer, error) {
	rows, err := r.db.Query(topCustomersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TopCustomer, 0)
	for rows.Next() {
		var c TopCustomer
		if err := rows.Scan(&c.UserID, &c.Email, &c.FirstName, &c.LastName, &c.TotalPurchases); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) TopBooks() ([]TopBook, error) {
	rows, err := r.db.Query(topBooksQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TopBook, 0)
	for rows.Next() {
		var b TopBook
		if err := rows.Scan(&b.ISBN, &b.Title, &b.TotalSold); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) BookOrderCount(isbn string) (int, error) {
	var count int
	if err := r.db.QueryRow(bookOrderCountQuery, isbn).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
