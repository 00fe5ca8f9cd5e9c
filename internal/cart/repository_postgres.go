package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getCartIDQuery  = `SELECT cart_id FROM carts WHERE user_id = $1`
	insertCartQuery = `INSERT INTO carts (user_id) VALUES ($1) RETURNING cart_id`

	getQuantityQuery = `
		SELECT ci.quantity
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.cart_id
		WHERE c.user_id = $1 AND ci.isbn = $2
	`
	upsertItemQuery = `
		INSERT INTO cart_items (cart_id, isbn, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, isbn) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	setQuantityQuery = `UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND isbn = $3`
	removeItemQuery  = `DELETE FROM cart_items WHERE cart_id = $1 AND isbn = $2`
	listItemsQuery   = `
		SELECT ci.isbn, ci.quantity
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.cart_id
		WHERE c.user_id = $1
		ORDER BY ci.isbn
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetQuantity(userID int, isbn string) (int, error) {
	var qty int
	err := r.db.QueryRow(getQuantityQuery, userID, isbn).Scan(&qty)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return qty, nil
}

func (r *PostgresRepository) AddItem(userID int, isbn string, qty int) error {
	cartID, err := r.getOrCreateCart(userID)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(upsertItemQuery, cartID, isbn, qty)
	return err
}

func (r *PostgresRepository) SetQuantity(userID int, isbn string, qty int) error {
	cartID, err := r.getCartID(userID)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(setQuantityQuery, qty, cartID, isbn)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) RemoveItem(userID int, isbn string) error {
	cartID, err := r.getCartID(userID)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(removeItemQuery, cartID, isbn)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) ListItems(userID int) ([]ItemRow, error) {
	rows, err := r.db.Query(listItemsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ItemRow, 0)
	for rows.Next() {
		var row ItemRow
		if err := rows.Scan(&row.ISBN, &row.Quantity); err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) getCartID(userID int) (int, error) {
	var cartID int
	err := r.db.QueryRow(getCartIDQuery, userID).Scan(&cartID)
	if err == sql.ErrNoRows {
		return 0, ErrCartNotFound
	}
	if err != nil {
		return 0, err
	}
	return cartID, nil
}

func (r *PostgresRepository) getOrCreateCart(userID int) (int, error) {
	cartID, err := r.getCartID(userID)
	if err == nil {
		return cartID, nil
	}
	if err != ErrCartNotFound {
		return 0, err
	}

	if err := r.db.QueryRow(insertCartQuery, userID).Scan(&cartID); err != nil {
		return 0, err
	}
	return cartID, nil
}
