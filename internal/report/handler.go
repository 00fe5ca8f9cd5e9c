package report

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"bookstore-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/orders/reports/sales/last-month", user.RequireAdmin, h.salesLastMonth)
	app.Get("/api/orders/reports/sales/by-date", user.RequireAdmin, h.salesByDate)
	app.Get("/api/orders/reports/top-customers", user.RequireAdmin, h.topCustomers)
	app.Get("/api/orders/reports/top-books", user.RequireAdmin, h.topBooks)
	app.Get("/api/orders/reports/book-orders/:isbn", user.RequireAdmin, h.bookOrderCount)
}

func (h *Handler) salesLastMonth(c *fiber.Ctx) error {
	summary, err := h.service.SalesLastMonth()
	if err != nil {
		log.Printf("sales last month report failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get sales report"})
	}
	return c.JSON(summary)
}

func (h *Handler) salesByDate(c *fiber.Ctx) error {
	summary, err := h.service.SalesByDate(c.Query("date"))
	if err != nil {
		if err == ErrInvalidDate {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date is required (format: YYYY-MM-DD)"})
		}
		log.Printf("sales by date report failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get sales report"})
	}
	return c.JSON(summary)
}

func (h *Handler) topCustomers(c *fiber.Ctx) error {
	customers, err := h.service.TopCustomers()
	if err != nil {
		log.Printf("top customers report failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get top customers"})
	}
	return c.JSON(fiber.Map{"topCustomers": customers})
}

func (h *Handler) topBooks(c *fiber.Ctx) error {
	books, err := h.service.TopBooks()
	if err != nil {
		log.Printf("top books report failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get top selling books"})
	}
	return c.JSON(fiber.Map{"topBooks": books})
}

func (h *Handler) bookOrderCount(c *fiber.Ctx) error {
	result, err := h.service.BookOrderCount(c.Params("isbn"))
	if err != nil {
		log.Printf("book order count report failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get book order count"})
	}
	return c.JSON(result)
}
