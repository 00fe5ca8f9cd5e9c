package book

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getBookQuery = `
		SELECT isbn, title, authors, publisher, publication_year, category, description, image_url, price, stock_quantity, threshold
		FROM books
		WHERE isbn = $1
	`
	listBooksQuery = `
		SELECT isbn, title, authors, publisher, publication_year, category, description, image_url, price, stock_quantity, threshold
		FROM books
		ORDER BY title
	`
	listForOrderingQuery = `
		SELECT isbn, title, stock_quantity, threshold
		FROM books
		ORDER BY title
	`
	upsertBookQuery = `
		INSERT INTO books (isbn, title, authors, publisher, publication_year, category, description, image_url, price, stock_quantity, threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (isbn) DO UPDATE SET
			title = EXCLUDED.title,
			authors = EXCLUDED.authors,
			publisher = EXCLUDED.publisher,
			publication_year = EXCLUDED.publication_year,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			price = EXCLUDED.price,
			stock_quantity = EXCLUDED.stock_quantity,
			threshold = EXCLUDED.threshold
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByISBN(isbn string) (Book, error) {
	row := r.db.QueryRow(getBookQuery, isbn)
	b, err := scanBook(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}

	return b, nil
}

func (r *PostgresRepository) List() ([]Book, error) {
	rows, err := r.db.Query(listBooksQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

func (r *PostgresRepository) ListForOrdering() ([]StockSummary, error) {
	rows, err := r.db.Query(listForOrderingQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StockSummary, 0)
	for rows.Next() {
		var s StockSummary
		if err := rows.Scan(&s.ISBN, &s.Title, &s.StockQuantity, &s.Threshold); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) Upsert(b Book) (Book, error) {
	var year any
	if b.PublicationYear != nil {
		year = *b.PublicationYear
	}
	_, err := r.db.Exec(
		upsertBookQuery,
		b.ISBN,
		b.Title,
		b.Authors,
		b.Publisher,
		year,
		b.Category,
		b.Description,
		b.ImageURL,
		b.Price,
		b.StockQuantity,
		b.Threshold,
	)
	if err != nil {
		return Book{}, err
	}

	return b, nil
}

func scanBook(scanner rowScanner) (Book, error) {
	b := Book{}
	var publisher sql.NullString
	var year sql.NullInt64
	var category sql.NullString
	var description sql.NullString
	var imageURL sql.NullString

	if err := scanner.Scan(
		&b.ISBN,
		&b.Title,
		&b.Authors,
		&publisher,
		&year,
		&category,
		&description,
		&imageURL,
		&b.Price,
		&b.StockQuantity,
		&b.Threshold,
	); err != nil {
		return Book{}, err
	}

	if publisher.Valid {
		b.Publisher = publisher.String
	}
	if year.Valid {
		y := int(year.Int64)
		b.PublicationYear = &y
	}
	if category.Valid {
		b.Category = category.String
	}
	if description.Valid {
		b.Description = description.String
	}
	if imageURL.Valid {
		b.ImageURL = imageURL.String
	}
	b.Available = b.StockQuantity > 0

	return b, nil
}
