package database

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// ConnectTest opens a uniquely-named in-memory SQLite database and migrates
// the schema. Each call gets an isolated database; the shared cache keeps it
// alive across the pooled connections of a single gorm.DB. The sqlite driver
// also translates unique-constraint violations to gorm.ErrDuplicatedKey, so
// tests exercise the same conflict path as PostgreSQL.
func ConnectTest() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
