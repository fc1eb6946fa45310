package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env from the working directory when present.
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("ℹ️  No .env file found, continuing...")
	}
}

// GetDatabaseURL returns DATABASE_URL, or "" when unset.
func GetDatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// Getenv returns the value of key, or fallback when it is unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
