package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"thriftbot-go/internal/models"
)

// NewDatabase opens the sqlite database and performs auto-migration.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all tracked models.
// Inventory data is the system of record, so unlike a scratch trading
// database nothing is ever dropped here.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.InventoryItem{}, &models.MarketComparable{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
