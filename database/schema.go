package database

import (
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

// Entry constraints live in the schema as well as in request validation, so
// a bad row cannot reach the table even if a caller bypasses the handlers.

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS trash_entries(
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		trash_type TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		photo_url TEXT,
		user_name TEXT,
		CHECK (latitude >= -90 AND latitude <= 90),
		CHECK (longitude >= -180 AND longitude <= 180),
		CHECK (trash_type IN ('plastic', 'glass', 'paper', 'bulky_item', 'hazardous', 'other'))
	)`

var sqliteIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_timestamp ON trash_entries(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_trash_type ON trash_entries(trash_type)`,
	`CREATE INDEX IF NOT EXISTS idx_location ON trash_entries(latitude, longitude)`,
}

const mysqlSchema = `
	CREATE TABLE IF NOT EXISTS trash_entries(
		id VARCHAR(36) NOT NULL,
		timestamp VARCHAR(32) NOT NULL,
		trash_type VARCHAR(32) NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		photo_url VARCHAR(255),
		user_name VARCHAR(255),
		PRIMARY KEY (id),
		INDEX idx_timestamp (timestamp),
		INDEX idx_trash_type (trash_type),
		INDEX idx_location (latitude, longitude),
		CHECK (latitude >= -90 AND latitude <= 90),
		CHECK (longitude >= -180 AND longitude <= 180),
		CHECK (trash_type IN ('plastic', 'glass', 'paper', 'bulky_item', 'hazardous', 'other'))
	)`

// InitSchema creates the trash_entries table and its indexes if they do not
// exist yet. The DDL differs per driver.
func InitSchema(db *sql.DB, driver string) error {
	log.Info("Initializing trashmap database schema...")

	switch driver {
	case "sqlite3":
		if _, err := db.Exec(sqliteSchema); err != nil {
			return fmt.Errorf("failed to create trash_entries table: %w", err)
		}
		for _, stmt := range sqliteIndexes {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}
	case "mysql":
		if _, err := db.Exec(mysqlSchema); err != nil {
			return fmt.Errorf("failed to create trash_entries table: %w", err)
		}
	default:
		return fmt.Errorf("unsupported db driver %q", driver)
	}

	log.Info("Trash_entries table created/verified")
	return nil
}
