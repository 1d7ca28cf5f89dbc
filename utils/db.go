package utils

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"trashmap/config"
)

func mysqlAddress(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// DBConnect opens the configured database. The default is an embedded
// sqlite file; DB_DRIVER=mysql selects a shared server instead.
func DBConnect(cfg *config.Config) (*sql.DB, error) {
	var dsn string
	switch cfg.DBDriver {
	case "sqlite3":
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			log.Errorf("Failed to create database directory: %v", err)
			return nil, err
		}
		dsn = cfg.DBPath
	case "mysql":
		dsn = mysqlAddress(cfg)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}

	db, err := sql.Open(cfg.DBDriver, dsn)
	if err != nil {
		log.Errorf("Failed to connect to the database: %v", err)
		return nil, err
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	if cfg.DBDriver == "sqlite3" {
		// sqlite serializes writers; a single connection avoids lock errors.
		db.SetMaxOpenConns(1)
	}
	log.Info("Established db connection.")
	return db, nil
}
