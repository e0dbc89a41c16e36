package config

import (
	"fmt"
	"log"
	"os"

	"github.com/mbuckingham74/moms-recipes-sub001/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database selected by DB_DRIVER: "sqlite" (default,
// a local file, no server needed) or "mysql". Schema setup is left to
// the caller so the migrate tool can open without touching tables.
func Connect() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	switch driver := EnvOr("DB_DRIVER", "sqlite"); driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(EnvOr("DB_PATH", "moms-recipes.db")), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			EnvOr("DB_HOST", "127.0.0.1"),
			EnvOr("DB_PORT", "3306"),
			os.Getenv("DB_NAME"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func InitDB() {
	db, err := Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Tag{},
		&models.PendingRecipe{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// EnvOr returns the environment value for key, or fallback when unset.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
