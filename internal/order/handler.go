package order

import (
	"errors"
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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders/checkout", h.checkout)
	app.Get("/api/orders/my-orders", h.myOrders)
}

type checkoutRequest struct {
	CreditCardNumber string `json:"creditCardNumber"`
	ExpiryDate       string `json:"expiryDate"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.CreditCardNumber == "" || payload.ExpiryDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Credit card number and expiry date are required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	receipt, err := h.service.Checkout(userID, payload.CreditCardNumber, payload.ExpiryDate)
	if err != nil {
		var stockErr *InsufficientStockError
		switch {
		case err == ErrInvalidCardNumber:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid credit card number"})
		case err == ErrInvalidExpiry:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expiry date format. Use MM/YY or MM/YYYY"})
		case err == ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cart is empty"})
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock for book: " + stockErr.Title})
		default:
			log.Printf("checkout failed for user %d: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to place order"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"orderId": receipt.OrderID,
		"total":   receipt.Total.StringFixed(2),
	})
}

func (h *Handler) myOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		log.Printf("list orders failed for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get past orders"})
	}

	return c.JSON(fiber.Map{"orders": orders})
}
