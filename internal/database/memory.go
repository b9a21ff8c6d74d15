package database

import (
	"fmt"

	puresqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenInMemory opens a migrated, private in-memory SQLite database.
// The pool is pinned to a single connection because every new SQLite
// connection to ":memory:" would see its own empty database.
func OpenInMemory() (*gorm.DB, error) {
	db, err := gorm.Open(puresqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate in-memory database: %w", err)
	}

	return db, nil
}
