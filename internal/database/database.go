package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
)

// NewSQLXOracleDB opens and verifies an Oracle connection for the API server.
func NewSQLXOracleDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	return db, nil
}
