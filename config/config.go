package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrations(DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
}

// BlockInactiveSiteSubmissions reports whether submissions against templates
// of a deactivated obra should be rejected. Off by default: a submission
// racing a deactivation is allowed to land.
func BlockInactiveSiteSubmissions() bool {
	return os.Getenv("BLOCK_INACTIVE_SITE_SUBMISSIONS") == "true"
}
