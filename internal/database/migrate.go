package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/sijms/go-ora/v2" // Ensure go-ora driver is registered
)

// RunMigrations applies every *.up.sql file in migrationsDir in lexical
// order. Statements are separated by a line containing only "/" so that a
// single file can hold several DDL statements, which Oracle does not accept
// in one Exec.
func RunMigrations(db *sql.DB, migrationsDir string) error {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".up.sql") {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		for _, stmt := range splitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}

		log.Printf("Executed migration: %s", name)
	}

	log.Println("Migrations completed successfully")
	return nil
}

func splitStatements(content string) []string {
	var stmts []string
	for _, part := range strings.Split(content, "\n/\n") {
		part = strings.TrimSpace(part)
		if part != "" {
			stmts = append(stmts, part)
		}
	}
	return stmts
}

// NewMigrateOracleDB opens a plain database/sql connection for migrations.
func NewMigrateOracleDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return db, nil
}
