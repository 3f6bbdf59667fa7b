package config

import (
	"log"
	"os"

	"distrigestion/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, read from env or fallback
var JWTSecret []byte

// LoadEnv reads .env if present; real environment variables win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	JWTSecret = []byte(GetEnv("JWT_SECRET", "distrigestion_super_secret_2026"))
}

// GetEnv returns an environment variable or the fallback.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	db, err := OpenDB(GetEnv("DB_PATH", "distrigestion.db"))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = db
	log.Println("Database connected and migrated successfully")
}

// OpenDB opens the sqlite store and migrates all models. Shared by the
// server and the import CLI.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.AppUser{},
		&models.Truck{},
		&models.Store{},
		&models.Order{},
		&models.ChatMessage{},
		&models.GroupMessage{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
