package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"speedrun/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Env()
	log := config.NewLogger()
	defer log.Sync()

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.DatabaseName,
		cfg.DatabaseSchema,
	)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("could not open database", zap.Error(err))
	}
	defer db.Close()

	version, err := getMigrationVersion(db, cfg.DatabaseSchema)
	if err != nil {
		log.Fatal("could not read migration version", zap.Error(err))
	}

	for {
		version++
		file, err := os.ReadFile(fmt.Sprintf("migrations/%d.sql", version))
		if err != nil {
			log.Info("cannot migrate further up", zap.Int("version", version-1))
			return
		}
		sqlText := strings.ReplaceAll(string(file), "{{schema}}", cfg.DatabaseSchema)
		if err := migrateUp(db, version, sqlText); err != nil {
			log.Fatal("migration failed", zap.Int("version", version), zap.Error(err))
		}
		log.Info("migrated", zap.Int("version", version))
	}
}

// migrateUp applies one file and bumps the stored version atomically.
func migrateUp(db *sql.DB, version int, sqlText string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(sqlText); err != nil {
		return fmt.Errorf("error executing migration: %w", err)
	}
	if _, err := tx.Exec("UPDATE migrations SET version = $1", version); err != nil {
		return fmt.Errorf("error updating migration version: %w", err)
	}
	return tx.Commit()
}

func getMigrationVersion(db *sql.DB, schemaName string) (version int, err error) {
	if _, err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName)); err != nil {
		return 0, err
	}
	err = db.QueryRow("SELECT version FROM migrations").Scan(&version)
	if err != nil {
		return 0, generateMigrationTable(db)
	}
	return version, nil
}

func generateMigrationTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INT PRIMARY KEY
		);
		INSERT INTO migrations (version) VALUES (0);
	`)
	return err
}
