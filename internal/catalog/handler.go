package catalog

import (
	"github.com/gofiber/fiber/v2"

	"bookstore-backend/internal/book"
	"bookstore-backend/internal/user"
)

// Handler serves the storefront book surface. Search and detail lookups go
// through the gateway; the admin routes manage the local cache rows that
// stock and ordering work against.
type Handler struct {
	gateway *Gateway
	books   book.ServiceInterface
}

func NewHandler(gateway *Gateway, books book.ServiceInterface) *Handler {
	return &Handler{gateway: gateway, books: books}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/books/search", h.search)
	app.Get("/api/books", user.RequireAdmin, h.listAll)
	app.Post("/api/books", user.RequireAdmin, h.stockBook)
	app.Get("/api/books/:isbn", h.getByISBN)
}

func (h *Handler) search(c *fiber.Ctx) error {
	q := Query{
		ISBN:      c.Query("isbn"),
		Title:     c.Query("title"),
		Author:    c.Query("author"),
		Category:  c.Query("category"),
		Publisher: c.Query("publisher"),
	}

	return c.JSON(fiber.Map{"books": h.gateway.Search(q)})
}

func (h *Handler) getByISBN(c *fiber.Ctx) error {
	isbn := c.Params("isbn")

	// prefer the local cache row, which carries real stock
	if b, err := h.books.GetByISBN(isbn); err == nil {
		return c.JSON(fiber.Map{"book": b})
	}

	b, err := h.gateway.GetByISBN(isbn)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Book not found"})
	}

	return c.JSON(fiber.Map{"book": b})
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"books": h.gateway.ListAll()})
}

type stockBookRequest struct {
	book.Book
}

// stockBook caches a catalog book locally so it can be carted and ordered.
func (h *Handler) stockBook(c *fiber.Ctx) error {
	payload := new(stockBookRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	b := payload.Book
	if b.ISBN == "" || b.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "isbn and title are required"})
	}
	if !b.Price.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be positive"})
	}
	if b.StockQuantity < 0 || b.Threshold < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "stock and threshold must be non-negative"})
	}

	stored, err := h.books.Upsert(b)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"book": stored})
}
