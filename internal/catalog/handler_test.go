package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"bookstore-backend/internal/book"
	"bookstore-backend/internal/user"
)

func makeAppWithCatalogHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				if role := c.Get("X-User-Role"); role != "" {
					claims["role"] = role
				}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func newCatalogTestApp(t *testing.T) (*fiber.App, *book.InMemoryRepository) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(volumesPayload))
	}))
	t.Cleanup(srv.Close)

	g, _ := newTestGateway(srv.URL)
	books := book.NewInMemoryRepository(nil)
	return makeAppWithCatalogHandler(NewHandler(g, book.NewService(books))), books
}

func TestSearchRoute(t *testing.T) {
	app, _ := newCatalogTestApp(t)

	req := httptest.NewRequest("GET", "/api/books/search?title=go", nil)
	req.Header.Set("X-User-ID", "7")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Books []book.Book `json:"books"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Books) != 1 || body.Books[0].ISBN != "9780134190440" {
		t.Fatalf("unexpected books %+v", body.Books)
	}
}

func TestGetByISBN_PrefersLocalRow(t *testing.T) {
	app, books := newCatalogTestApp(t)
	books.Upsert(book.Book{
		ISBN:          "9780134190440",
		Title:         "Stocked Copy",
		Price:         decimal.RequireFromString("25.00"),
		StockQuantity: 3,
	})

	req := httptest.NewRequest("GET", "/api/books/9780134190440", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Book book.Book `json:"book"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Book.Title != "Stocked Copy" {
		t.Fatalf("expected the local row, got %q", body.Book.Title)
	}
	if body.Book.StockQuantity != 3 {
		t.Fatalf("expected local stock 3, got %d", body.Book.StockQuantity)
	}
}

func TestGetByISBN_FallsThroughToGateway(t *testing.T) {
	app, _ := newCatalogTestApp(t)

	req := httptest.NewRequest("GET", "/api/books/9780134190440", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Book book.Book `json:"book"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Book.Title != "The Go Programming Language" {
		t.Fatalf("expected the gateway book, got %q", body.Book.Title)
	}
}

func TestListAllRoute_AdminOnly(t *testing.T) {
	app, _ := newCatalogTestApp(t)

	req := httptest.NewRequest("GET", "/api/books", nil)
	req.Header.Set("X-User-ID", "7")
	req.Header.Set("X-User-Role", user.RoleCustomer)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/books", nil)
	req2.Header.Set("X-User-ID", "1")
	req2.Header.Set("X-User-Role", user.RoleAdmin)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res2.StatusCode)
	}
}

func TestStockBookRoute(t *testing.T) {
	app, books := newCatalogTestApp(t)

	payload := `{"isbn":"9780001","title":"Book A","price":"10.00","stock_quantity":5,"threshold":2}`
	req := httptest.NewRequest("POST", "/api/books", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-User-Role", user.RoleAdmin)
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	b, err := books.GetByISBN("9780001")
	if err != nil {
		t.Fatalf("expected the book to be stored: %v", err)
	}
	if b.StockQuantity != 5 || b.Threshold != 2 {
		t.Fatalf("unexpected stored book %+v", b)
	}
}

func TestStockBookRoute_Validation(t *testing.T) {
	app, _ := newCatalogTestApp(t)

	cases := []struct {
		name    string
		payload string
	}{
		{"missing isbn", `{"title":"Book A","price":"10.00"}`},
		{"missing title", `{"isbn":"9780001","price":"10.00"}`},
		{"zero price", `{"isbn":"9780001","title":"Book A","price":"0"}`},
		{"negative stock", `{"isbn":"9780001","title":"Book A","price":"10.00","stock_quantity":-1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/books", strings.NewReader(tc.payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", "1")
			req.Header.Set("X-User-Role", user.RoleAdmin)
			res, _ := app.Test(req)
			if res.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", res.StatusCode)
			}
		})
	}
}
