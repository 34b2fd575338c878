package testutil

import (
	"io"
	"log/slog"

	"task-tracker-api/internal/config"
	"task-tracker-api/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := database.Open(config.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1}, logger.Silent)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		return nil, err
	}
	return db, nil
}
