package order

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getCartIDQuery = `SELECT cart_id FROM carts WHERE user_id = $1`

	// Lines are read in ISBN order so concurrent checkouts acquire their
	// book row locks in the same sequence.
	lockCartLinesQuery = `
		SELECT ci.isbn, ci.quantity, b.title, b.price, b.stock_quantity, b.threshold
		FROM cart_items ci
		JOIN books b ON ci.isbn = b.isbn
		WHERE ci.cart_id = $1
		ORDER BY ci.isbn
		FOR UPDATE OF b
	`
	insertOrderQuery = `
		INSERT INTO orders (user_id, order_date, total_price)
		VALUES ($1, NOW(), $2)
		RETURNING order_id
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, isbn, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4)
	`
	decrementStockQuery = `UPDATE books SET stock_quantity = stock_quantity - $1 WHERE isbn = $2`

	countPendingReplenishmentQuery = `
		SELECT COUNT(*) FROM publisher_orders WHERE isbn = $1 AND order_status = 'Pending'
	`
	insertReplenishmentQuery = `
		INSERT INTO publisher_orders (isbn, quantity, order_date, order_status)
		VALUES ($1, $2, NOW(), 'Pending')
	`

	deleteCartItemsQuery = `DELETE FROM cart_items WHERE cart_id = $1`
	deleteCartQuery      = `DELETE FROM carts WHERE cart_id = $1`

	listOrdersByUserQuery = `
		SELECT order_id, order_date, total_price
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC
	`
	listOrderItemsQuery = `
		SELECT oi.order_id, oi.isbn, COALESCE(b.title, 'Unknown'), COALESCE(b.authors, ''), oi.quantity, oi.price_at_purchase
		FROM order_items oi
		LEFT JOIN books b ON oi.isbn = b.isbn
		WHERE oi.order_id = ANY($1::int[])
		ORDER BY array_position($1::int[], oi.order_id), oi.isbn
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type cartLine struct {
	isbn      string
	quantity  int
	title     string
	price     decimal.Decimal
	stock     int
	threshold int
}

func (r *PostgresRepository) Checkout(userID int) (Receipt, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Receipt{}, err
	}
	defer tx.Rollback()

	var cartID int
	if err := tx.QueryRow(getCartIDQuery, userID).Scan(&cartID); err != nil {
		if err == sql.ErrNoRows {
			return Receipt{}, ErrEmptyCart
		}
		return Receipt{}, err
	}

	lines, err := lockCartLines(tx, cartID)
	if err != nil {
		return Receipt{}, err
	}
	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range lines {
		if line.quantity > line.stock {
			return Receipt{}, &InsufficientStockError{Title: line.title}
		}
		total = total.Add(line.price.Mul(decimal.NewFromInt(int64(line.quantity))))
	}

	var orderID int
	if err := tx.QueryRow(insertOrderQuery, userID, total).Scan(&orderID); err != nil {
		return Receipt{}, err
	}

	for _, line := range lines {
		if _, err := tx.Exec(insertOrderItemQuery, orderID, line.isbn, line.quantity, line.price); err != nil {
			return Receipt{}, err
		}
		if _, err := tx.Exec(decrementStockQuery, line.quantity, line.isbn); err != nil {
			return Receipt{}, err
		}
		if err := replenishIfBelowThreshold(tx, line); err != nil {
			return Receipt{}, err
		}
	}

	if _, err := tx.Exec(deleteCartItemsQuery, cartID); err != nil {
		return Receipt{}, err
	}
	if _, err := tx.Exec(deleteCartQuery, cartID); err != nil {
		return Receipt{}, err
	}

	if err := tx.Commit(); err != nil {
		return Receipt{}, err
	}

	return Receipt{OrderID: orderID, Total: total}, nil
}

func lockCartLines(tx *sql.Tx, cartID int) ([]cartLine, error) {
	rows, err := tx.Query(lockCartLinesQuery, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]cartLine, 0)
	for rows.Next() {
		var line cartLine
		if err := rows.Scan(&line.isbn, &line.quantity, &line.title, &line.price, &line.stock, &line.threshold); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// replenishIfBelowThreshold queues a pending publisher order when the sale
// drops a book's stock under its threshold and nothing is on order yet.
// It runs inside the checkout transaction.
func replenishIfBelowThreshold(tx *sql.Tx, line cartLine) error {
	if line.threshold <= 0 || line.stock-line.quantity >= line.threshold {
		return nil
	}

	var pending int
	if err := tx.QueryRow(countPendingReplenishmentQuery, line.isbn).Scan(&pending); err != nil {
		return err
	}
	if pending > 0 {
		return nil
	}

	_, err := tx.Exec(insertReplenishmentQuery, line.isbn, line.threshold)
	return err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]int, 0)
	index := make(map[int]int)
	for rows.Next() {
		var ord Order
		var orderDate time.Time
		if err := rows.Scan(&ord.OrderID, &orderDate, &ord.TotalPrice); err != nil {
			return nil, err
		}
		ord.OrderDate = orderDate.UTC().Format(time.RFC3339)
		ord.Items = make([]Item, 0)
		index[ord.OrderID] = len(orders)
		ids = append(ids, ord.OrderID)
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.Query(listOrderItemsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int
		var item Item
		if err := itemRows.Scan(&orderID, &item.ISBN, &item.Title, &item.Authors, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, err
		}
		item.ItemTotal = item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return orders, itemRows.Err()
}
