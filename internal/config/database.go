package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JudeDesigns/B-R-Driver-App-sub000/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB

	// UploadLocation is the timezone route dates are normalized to. All
	// uploads belong to one warehouse, so a single configured zone is enough.
	UploadLocation *time.Location
)

// InitDB initializes the database connection using environment variables
// and migrates the schema.
func InitDB() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	// Load environment variables (with defaults)
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "brdriver")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	// Build Data Source Name
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Route{},
		&models.Stop{},
		&models.AdminNote{},
		&models.SafetyCheck{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	loc, err := time.LoadLocation(getEnv("UPLOAD_TIMEZONE", "America/Los_Angeles"))
	if err != nil {
		log.Fatalf("invalid UPLOAD_TIMEZONE: %v", err)
	}

	// Assign to globals
	DB = db
	UploadLocation = loc
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
