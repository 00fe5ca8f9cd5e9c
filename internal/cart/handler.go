package cart

import (
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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/cart", h.addItem)
	app.Get("/api/cart", h.viewCart)
	app.Put("/api/cart/:isbn", h.setQuantity)
	app.Delete("/api/cart/:isbn", h.removeItem)
}

type addItemRequest struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.ISBN == "" || payload.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ISBN and valid quantity are required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.service.AddItem(userID, payload.ISBN, payload.Quantity); err != nil {
		return respondCartError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item added to cart successfully"})
}

func (h *Handler) viewCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	view, err := h.service.View(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(view)
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	payload := new(setQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Valid quantity is required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.service.SetQuantity(userID, c.Params("isbn"), payload.Quantity); err != nil {
		return respondCartError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Cart quantity updated successfully"})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.service.RemoveItem(userID, c.Params("isbn")); err != nil {
		return respondCartError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item removed from cart successfully"})
}

func respondCartError(c *fiber.Ctx, err error) error {
	switch err {
	case book.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Book not found"})
	case ErrCartNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart not found"})
	case ErrItemNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
	case ErrInsufficientStock:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock available"})
	case ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Valid quantity is required"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
