package user

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithUserHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
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

const signupPayload = `{
	"email": "jane@example.com",
	"password": "secret123",
	"firstName": "Jane",
	"lastName": "Doe",
	"phone": "0812345678",
	"address": "1 Main St"
}`

func TestSignup(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := makeAppWithUserHandler(NewHandler(NewService(NewInMemoryRepository(nil))))

	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(signupPayload))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Token == "" {
		t.Error("expected a signed token")
	}
	if body.User.Password != "" {
		t.Error("password leaked in signup response")
	}
	if body.User.Role != RoleCustomer {
		t.Errorf("expected customer role, got %q", body.User.Role)
	}

	// same email again
	req2 := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(signupPayload))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", res2.StatusCode)
	}
	var dup map[string]string
	json.NewDecoder(res2.Body).Decode(&dup)
	if dup["error"] != "Email already exists" {
		t.Errorf("unexpected error message %q", dup["error"])
	}
}

func TestSignup_MissingFields(t *testing.T) {
	app := makeAppWithUserHandler(NewHandler(NewService(NewInMemoryRepository(nil))))

	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(`{"email":"jane@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewService(NewInMemoryRepository(nil))
	if _, err := svc.Register(User{Email: "jane@example.com", Password: "secret123", FirstName: "Jane", LastName: "Doe", Phone: "0812345678", Address: "1 Main St"}); err != nil {
		t.Fatal(err)
	}
	app := makeAppWithUserHandler(NewHandler(svc))

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"jane@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	parsed, err := jwt.Parse(body.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}

	bad := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`))
	bad.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(bad)
	if res2.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", res2.StatusCode)
	}
}

func TestProfile(t *testing.T) {
	seed := []User{{ID: 7, Email: "jane@example.com", Password: "$2a$10$hash", FirstName: "Jane", LastName: "Doe", Role: RoleCustomer}}
	app := makeAppWithUserHandler(NewHandler(NewService(NewInMemoryRepository(seed))))

	// no claims
	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req2.Header.Set("X-User-ID", "7")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res2.StatusCode)
	}

	var u User
	if err := json.NewDecoder(res2.Body).Decode(&u); err != nil {
		t.Fatal(err)
	}
	if u.Email != "jane@example.com" || u.Password != "" {
		t.Fatalf("unexpected profile %+v", u)
	}
}

func TestProfile_PartialUpdate(t *testing.T) {
	seed := []User{{ID: 7, Email: "jane@example.com", Password: "$2a$10$hash", FirstName: "Jane", LastName: "Doe", Phone: "0812345678", Address: "1 Main St", Role: RoleCustomer}}
	repo := NewInMemoryRepository(seed)
	app := makeAppWithUserHandler(NewHandler(NewService(repo)))

	req := httptest.NewRequest("PATCH", "/api/auth/profile", strings.NewReader(`{"phone":"0899999999"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	stored, err := repo.GetByID(7)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Phone != "0899999999" {
		t.Fatalf("phone not updated, got %q", stored.Phone)
	}
	if stored.FirstName != "Jane" || stored.Address != "1 Main St" {
		t.Fatalf("untouched fields changed: %+v", stored)
	}
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-User-Role"); role != "" {
			claims := jwt.MapClaims{"user_id": 1, "role": role}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/admin", nil)
	req2.Header.Set("X-User-Role", RoleCustomer)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res2.StatusCode)
	}

	req3 := httptest.NewRequest("GET", "/admin", nil)
	req3.Header.Set("X-User-Role", RoleAdmin)
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res3.StatusCode)
	}
}
