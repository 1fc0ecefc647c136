package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

// Config carries everything read from the environment. Load once in main
// and pass down; nothing in the request path touches os.Getenv.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret      string
	TokenLifetime  time.Duration
	Port           string
	AllowedOrigins []string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "grillpizzeria"),
		DBPort:        getEnv("DB_PORT", "5432"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenLifetime: 8 * time.Hour,
		Port:          getEnv("PORT", "8080"),
	}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		cfg.AllowedOrigins = []string{origin}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to Postgres and returns the handle. Callers own it; no
// package-level DB state.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema. Unique indexes declared on the
// models are the actual uniqueness enforcement point; service-level
// pre-checks only exist for friendlier error messages.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.FoodCategory{},
		&models.Allergen{},
		&models.Food{},
		&models.FoodAllergen{},
		&models.Order{},
		&models.OrderFood{},
		&models.Log{},
	)
}
