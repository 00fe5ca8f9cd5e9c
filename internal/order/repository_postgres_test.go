package order

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCheckout_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cart_id FROM carts").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}).AddRow(3))

	lines := sqlmock.NewRows([]string{"isbn", "quantity", "title", "price", "stock_quantity", "threshold"}).
		AddRow("9780001", 2, "Book A", "10.00", 5, 0).
		AddRow("9780002", 1, "Book B", "20.00", 1, 0)
	mock.ExpectQuery("FOR UPDATE OF b").WithArgs(3).WillReturnRows(lines)

	mock.ExpectQuery("INSERT INTO orders").WithArgs(7, "40.00").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(42))

	mock.ExpectExec("INSERT INTO order_items").WithArgs(42, "9780001", 2, "10.00").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE books SET stock_quantity = stock_quantity -").WithArgs(2, "9780001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WithArgs(42, "9780002", 1, "20.00").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE books SET stock_quantity = stock_quantity -").WithArgs(1, "9780002").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("DELETE FROM cart_items").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM carts").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	receipt, err := repo.Checkout(7)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if receipt.OrderID != 42 {
		t.Fatalf("unexpected order id %d", receipt.OrderID)
	}
	if got := receipt.Total.StringFixed(2); got != "40.00" {
		t.Fatalf("unexpected total %q", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckout_InsufficientStockRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cart_id FROM carts").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}).AddRow(3))

	lines := sqlmock.NewRows([]string{"isbn", "quantity", "title", "price", "stock_quantity", "threshold"}).
		AddRow("9780001", 3, "Scarce Book", "10.00", 1, 0)
	mock.ExpectQuery("FOR UPDATE OF b").WithArgs(3).WillReturnRows(lines)
	mock.ExpectRollback()

	_, err = repo.Checkout(7)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Title != "Scarce Book" {
		t.Fatalf("unexpected title %q", stockErr.Title)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckout_NoCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cart_id FROM carts").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}))
	mock.ExpectRollback()

	_, err = repo.Checkout(9)
	if err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cart_id FROM carts").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}).AddRow(4))
	mock.ExpectQuery("FOR UPDATE OF b").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"isbn", "quantity", "title", "price", "stock_quantity", "threshold"}))
	mock.ExpectRollback()

	_, err = repo.Checkout(9)
	if err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckout_QueuesReplenishment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cart_id FROM carts").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}).AddRow(3))

	// stock drops from 6 to 4, under the threshold of 5
	lines := sqlmock.NewRows([]string{"isbn", "quantity", "title", "price", "stock_quantity", "threshold"}).
		AddRow("9780003", 2, "Book C", "5.00", 6, 5)
	mock.ExpectQuery("FOR UPDATE OF b").WithArgs(3).WillReturnRows(lines)

	mock.ExpectQuery("INSERT INTO orders").WithArgs(7, "10.00").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(43))
	mock.ExpectExec("INSERT INTO order_items").WithArgs(43, "9780003", 2, "5.00").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE books SET stock_quantity = stock_quantity -").WithArgs(2, "9780003").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("FROM publisher_orders WHERE isbn").WithArgs("9780003").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO publisher_orders").WithArgs("9780003", 5).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec("DELETE FROM cart_items").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM carts").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if _, err := repo.Checkout(7); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckout_SkipsReplenishmentWhenPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cart_id FROM carts").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}).AddRow(3))

	lines := sqlmock.NewRows([]string{"isbn", "quantity", "title", "price", "stock_quantity", "threshold"}).
		AddRow("9780003", 2, "Book C", "5.00", 6, 5)
	mock.ExpectQuery("FOR UPDATE OF b").WithArgs(3).WillReturnRows(lines)

	mock.ExpectQuery("INSERT INTO orders").WithArgs(7, "10.00").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(44))
	mock.ExpectExec("INSERT INTO order_items").WithArgs(44, "9780003", 2, "5.00").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE books SET stock_quantity = stock_quantity -").WithArgs(2, "9780003").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// one replenishment already pending, no new one queued
	mock.ExpectQuery("FROM publisher_orders WHERE isbn").WithArgs("9780003").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectExec("DELETE FROM cart_items").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM carts").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if _, err := repo.Checkout(7); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	placed := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	orderRows := sqlmock.NewRows([]string{"order_id", "order_date", "total_price"}).
		AddRow(42, placed, "40.00").
		AddRow(41, placed.Add(-24*time.Hour), "12.99")
	mock.ExpectQuery("FROM orders").WithArgs(7).WillReturnRows(orderRows)

	itemRows := sqlmock.NewRows([]string{"order_id", "isbn", "title", "authors", "quantity", "price_at_purchase"}).
		AddRow(42, "9780001", "Book A", "Author A", 2, "10.00").
		AddRow(42, "9780002", "Book B", "Author B", 1, "20.00").
		AddRow(41, "9780004", "Book D", "Author D", 1, "12.99")
	mock.ExpectQuery("FROM order_items oi").WillReturnRows(itemRows)

	orders, err := repo.ListByUser(7)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].OrderID != 42 || len(orders[0].Items) != 2 {
		t.Fatalf("unexpected first order %+v", orders[0])
	}
	if orders[0].OrderDate != "2026-08-30T14:00:00Z" {
		t.Fatalf("unexpected order date %q", orders[0].OrderDate)
	}
	if got := orders[0].Items[0].ItemTotal.StringFixed(2); got != "20.00" {
		t.Fatalf("unexpected item total %q", got)
	}
	if len(orders[1].Items) != 1 || orders[1].Items[0].ISBN != "9780004" {
		t.Fatalf("unexpected second order %+v", orders[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
