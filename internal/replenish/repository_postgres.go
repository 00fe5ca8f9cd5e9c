package replenish

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO publisher_orders (isbn, quantity, order_date, order_status)
		VALUES ($1, $2, NOW(), 'Pending')
		RETURNING order_id, order_date
	`
	lockOrderQuery = `
		SELECT isbn, quantity, order_status
		FROM publisher_orders
		WHERE order_id = $1
		FOR UPDATE
	`
	confirmOrderQuery = `
		UPDATE publisher_orders
		SET order_status = 'Confirmed'
		WHERE order_id = $1 AND order_status = 'Pending'
	`
	increaseStockQuery = `UPDATE books SET stock_quantity = stock_quantity + $1 WHERE isbn = $2`

	listOrdersQuery = `
		SELECT po.order_id, po.isbn, COALESCE(b.title, 'Unknown'), po.quantity, po.order_date, po.order_status
		FROM publisher_orders po
		LEFT JOIN books b ON po.isbn = b.isbn
		ORDER BY po.order_date DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(isbn string, qty int) (PublisherOrder, error) {
	ord := PublisherOrder{ISBN: isbn, Quantity: qty, Status: StatusPending}
	var orderDate time.Time
	if err := r.db.QueryRow(insertOrderQuery, isbn, qty).Scan(&ord.OrderID, &orderDate); err != nil {
		return PublisherOrder{}, err
	}
	ord.OrderDate = orderDate.UTC().Format(time.RFC3339)
	return ord, nil
}

func (r *PostgresRepository) Confirm(orderID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var isbn string
	var qty int
	var status string
	if err := tx.QueryRow(lockOrderQuery, orderID).Scan(&isbn, &qty, &status); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	if status == StatusConfirmed {
		return ErrAlreadyConfirmed
	}

	if _, err := tx.Exec(confirmOrderQuery, orderID); err != nil {
		return err
	}
	if _, err := tx.Exec(increaseStockQuery, qty, isbn); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) List() ([]PublisherOrder, error) {
	rows, err := r.db.Query(listOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PublisherOrder, 0)
	for rows.Next() {
		var ord PublisherOrder
		var orderDate time.Time
		if err := rows.Scan(&ord.OrderID, &ord.ISBN, &ord.Title, &ord.Quantity, &orderDate, &ord.Status); err != nil {
			return nil, err
		}
		ord.OrderDate = orderDate.UTC().Format(time.RFC3339)
		out = append(out, ord)
	}

	return out, rows.Err()
}
