package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"bookstore-backend/internal/book"
	"bookstore-backend/internal/cart"
	"bookstore-backend/internal/catalog"
	"bookstore-backend/internal/config"
	"bookstore-backend/internal/order"
	"bookstore-backend/internal/replenish"
	"bookstore-backend/internal/report"
	"bookstore-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	ensureSchema(db)

	bookRepo := book.NewPostgresRepository(db)
	bookService := book.NewService(bookRepo)
	seedBooksWhenEmpty(db, bookService)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	gateway := catalog.NewGateway(cfg.BooksAPIURL)
	catalogHandler := catalog.NewHandler(gateway, bookService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), bookService)
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(order.NewPostgresRepository(db))
	orderHandler := order.NewHandler(orderService)

	replenishService := replenish.NewService(replenish.NewPostgresRepository(db), bookService)
	replenishHandler := replenish.NewHandler(replenishService)

	reportService := report.NewService(report.NewPostgresRepository(db), bookService)
	reportHandler := report.NewHandler(reportService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "BookStore API is running"})
	})

	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	catalogHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	replenishHandler.RegisterAdminRoutes(app)
	reportHandler.RegisterAdminRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	reqID := uuid.NewString()
	c.Set("X-Request-ID", reqID)
	start := time.Now()
	err := c.Next()
	log.Printf("[%s] %s %s -> %d (%s)", reqID, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(databaseURL string) *sql.DB {
	if databaseURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// ensureSchema creates the tables on first run so a fresh database works
// without a separate migration step.
func ensureSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT,
			address TEXT,
			role TEXT NOT NULL DEFAULT 'CUSTOMER',
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			isbn TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT NOT NULL DEFAULT '',
			publisher TEXT,
			publication_year INT,
			category TEXT,
			description TEXT,
			image_url TEXT,
			price NUMERIC(10,2) NOT NULL,
			stock_quantity INT NOT NULL DEFAULT 0,
			threshold INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			cart_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL UNIQUE REFERENCES users(user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			cart_id INT NOT NULL REFERENCES carts(cart_id),
			isbn TEXT NOT NULL REFERENCES books(isbn),
			quantity INT NOT NULL CHECK (quantity >= 1),
			PRIMARY KEY (cart_id, isbn)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(user_id),
			order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			total_price NUMERIC(10,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id INT NOT NULL REFERENCES orders(order_id),
			isbn TEXT NOT NULL,
			quantity INT NOT NULL,
			price_at_purchase NUMERIC(10,2) NOT NULL,
			PRIMARY KEY (order_id, isbn)
		)`,
		`CREATE TABLE IF NOT EXISTS publisher_orders (
			order_id SERIAL PRIMARY KEY,
			isbn TEXT NOT NULL REFERENCES books(isbn),
			quantity INT NOT NULL,
			order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			order_status TEXT NOT NULL DEFAULT 'Pending'
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

// seedBooksWhenEmpty stocks the shelves with the sample dataset so a fresh
// install has something to sell.
func seedBooksWhenEmpty(db *sql.DB, books *book.Service) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		log.Printf("warning: could not count books: %v", err)
		return
	}
	if count > 0 {
		return
	}

	for _, b := range catalog.SampleBooks() {
		b.Threshold = 5
		if _, err := books.Upsert(b); err != nil {
			log.Printf("warning: could not seed book %s: %v", b.ISBN, err)
		}
	}
}
