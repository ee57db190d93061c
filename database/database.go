package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/config"
)

// Connect opens the Postgres connection used by every repository.
// TranslateError is enabled so uniqueness violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Connect(cfg *config.Config) *gorm.DB {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, sslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	log.Printf("✅ Connected to database %s@%s:%s", cfg.DBName, cfg.DBHost, cfg.DBPort)
	return db
}
