package replenish

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bookstore-backend/internal/book"
	"bookstore-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/orders/book-orders", user.RequireAdmin, h.listOrders)
	app.Post("/api/orders/book-orders/manual", user.RequireAdmin, h.createManual)
	app.Put("/api/orders/book-orders/:orderId/confirm", user.RequireAdmin, h.confirmOrder)
	app.Get("/api/orders/books-for-ordering", user.RequireAdmin, h.booksForOrdering)
}

type manualOrderRequest struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) createManual(c *fiber.Ctx) error {
	payload := new(manualOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.ISBN == "" || payload.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ISBN and valid quantity are required"})
	}

	ord, err := h.service.CreateManual(payload.ISBN, payload.Quantity)
	if err != nil {
		switch err {
		case book.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Book not found"})
		case ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ISBN and valid quantity are required"})
		default:
			log.Printf("create publisher order failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Publisher order created successfully",
		"orderId":   ord.OrderID,
		"bookTitle": ord.Title,
		"quantity":  ord.Quantity,
	})
}

func (h *Handler) confirmOrder(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}

	if err := h.service.Confirm(orderID); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		case ErrAlreadyConfirmed:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order already confirmed"})
		default:
			log.Printf("confirm publisher order %d failed: %v", orderID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to confirm order"})
		}
	}

	return c.JSON(fiber.Map{"message": "Order confirmed successfully"})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	orders, err := h.service.List()
	if err != nil {
		log.Printf("list publisher orders failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get orders"})
	}

	return c.JSON(fiber.Map{"orders": orders})
}

func (h *Handler) booksForOrdering(c *fiber.Ctx) error {
	books, err := h.service.BooksForOrdering()
	if err != nil {
		log.Printf("list books for ordering failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get books"})
	}

	return c.JSON(fiber.Map{"books": books})
}
