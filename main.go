package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"betweenstats/adapters/excel"
	"betweenstats/adapters/postgres"
	"betweenstats/internal/config"
	"betweenstats/internal/errors"
	"betweenstats/ports"
	"betweenstats/ui"
)

// initDatabase connects to Postgres and wraps the configured table as a data
// source. Returns nil when no DATABASE_URL is configured.
func initDatabase(cfg *config.Config) (ports.DataSource, func(), error) {
	if cfg.Database.URL == "" {
		return nil, func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to ping database")
	}

	source, err := postgres.NewTableSource(db, cfg.Database.Table)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return source, func() { db.Close() }, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	table, closeDB, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer closeDB()

	// With no database, a configured xlsx/csv file serves the table routes.
	if table == nil && cfg.Data.File != "" {
		fileTable, err := excel.NewDataReader(cfg.Data.File).Open()
		if err != nil {
			log.Fatalf("Failed to open data file: %v", err)
		}
		log.Printf("Using file data source: %s", cfg.Data.File)
		table = fileTable
	}

	server := ui.NewServer(cfg, table)
	log.Fatal(server.Start(":" + cfg.Server.Port))
}
