package catalog

import (
	"github.com/shopspring/decimal"

	"bookstore-backend/internal/book"
)

// SampleBooks returns the fixed fallback dataset served when the external
// API is unavailable. It doubles as the seed for an empty local books table.
func SampleBooks() []book.Book {
	year := func(y int) *int { return &y }
	return []book.Book{
		{
			ISBN:            "9780143127741",
			Title:           "The Great Gatsby",
			Authors:         "F. Scott Fitzgerald",
			Publisher:       "Penguin Classics",
			PublicationYear: year(1925),
			Price:           decimal.RequireFromString("12.99"),
			Category:        "History",
			StockQuantity:   25,
			Description:     "A classic American novel about the Jazz Age.",
			ImageURL:        "https://covers.openlibrary.org/b/isbn/9780143127741-L.jpg",
			Available:       true,
		},
		{
			ISBN:            "9780061120084",
			Title:           "To Kill a Mockingbird",
			Authors:         "Harper Lee",
			Publisher:       "Harper Perennial",
			PublicationYear: year(1960),
			Price:           decimal.RequireFromString("14.99"),
			Category:        "History",
			StockQuantity:   30,
			Description:     "A gripping tale of racial injustice and childhood innocence.",
			ImageURL:        "https://covers.openlibrary.org/b/isbn/9780061120084-L.jpg",
			Available:       true,
		},
		{
			ISBN:            "9780547928227",
			Title:           "The Hobbit",
			Authors:         "J.R.R. Tolkien",
			Publisher:       "Houghton Mifflin Harcourt",
			PublicationYear: year(1937),
			Price:           decimal.RequireFromString("16.99"),
			Category:        "Art",
			StockQuantity:   20,
			Description:     "A fantasy adventure novel.",
			ImageURL:        "https://covers.openlibrary.org/b/isbn/9780547928227-L.jpg",
			Available:       true,
		},
		{
			ISBN:            "9780141439518",
			Title:           "Pride and Prejudice",
			Authors:         "Jane Austen",
			Publisher:       "Penguin Classics",
			PublicationYear: year(1813),
			Price:           decimal.RequireFromString("11.99"),
			Category:        "History",
			StockQuantity:   35,
			Description:     "A romantic novel of manners.",
			ImageURL:        "https://covers.openlibrary.org/b/isbn/9780141439518-L.jpg",
			Available:       true,
		},
		{
			ISBN:            "9780140283334",
			Title:           "1984",
			Authors:         "George Orwell",
			Publisher:       "Penguin Books",
			PublicationYear: year(1949),
			Price:           decimal.RequireFromString("13.99"),
			Category:        "Science",
			StockQuantity:   28,
			Description:     "A dystopian social science fiction novel.",
			ImageURL:        "https://covers.openlibrary.org/b/isbn/9780140283334-L.jpg",
			Available:       true,
		},
	}
}
