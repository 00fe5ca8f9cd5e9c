package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	BooksAPIURL string
}

func Load() Config {
	return Config{
		Addr:        getenv("BOOKSTORE_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		BooksAPIURL: getenv("BOOKS_API_URL", "https://www.googleapis.com/books/v1/volumes"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
