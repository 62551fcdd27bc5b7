// Package database opens the SQL connection pool used by the record
// stores when STORE_BACKEND is mysql or postgres.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/iliyamo/hostel-management/internal/config"
)

// DriverName maps a store backend to its database/sql driver.
func DriverName(backend string) (string, error) {
	switch backend {
	case config.BackendMySQL:
		return "mysql", nil
	case config.BackendPostgres:
		return "pgx", nil
	}
	return "", fmt.Errorf("no SQL driver for backend %q", backend)
}

// DSN builds the connection string of the configured backend.
func DSN(cfg config.Config) (string, error) {
	switch cfg.StoreBackend {
	case config.BackendMySQL:
		auth := cfg.DBUser
		if cfg.DBPass != "" {
			auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, cfg.DBHost, cfg.DBPort, cfg.DBName), nil
	case config.BackendPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.DBUser, cfg.DBPass),
			Host:     cfg.DBHost + ":" + cfg.DBPort,
			Path:     "/" + cfg.DBName,
			RawQuery: "sslmode=disable",
		}
		if cfg.DBPass == "" {
			u.User = url.User(cfg.DBUser)
		}
		return u.String(), nil
	}
	return "", fmt.Errorf("no DSN for backend %q", cfg.StoreBackend)
}

// Open connects to the configured database and verifies the connection.
func Open(cfg config.Config) (*sql.DB, error) {
	driver, err := DriverName(cfg.StoreBackend)
	if err != nil {
		return nil, err
	}
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}
