package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS medicine_items (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		category         TEXT NOT NULL DEFAULT '',
		unit             TEXT NOT NULL DEFAULT '',
		overall_quantity INTEGER NOT NULL DEFAULT 0 CHECK (overall_quantity >= 0),
		archived         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS medicine_ins (
		batch_id        TEXT PRIMARY KEY,
		item_id         TEXT NOT NULL REFERENCES medicine_items(id),
		quantity        INTEGER NOT NULL CHECK (quantity >= 0),
		expiration_date DATE NOT NULL,
		receipt_id      TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS medicine_disposals (
		id         BIGSERIAL PRIMARY KEY,
		batch_id   TEXT NOT NULL REFERENCES medicine_ins(batch_id),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		reason     TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS medicine_adjustments (
		id         BIGSERIAL PRIMARY KEY,
		item_id    TEXT NOT NULL REFERENCES medicine_items(id),
		batch_id   TEXT NOT NULL REFERENCES medicine_ins(batch_id),
		type       TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		reason     TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_medicine_ins_item ON medicine_ins(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_medicine_disposals_batch ON medicine_disposals(batch_id)`,
	`CREATE INDEX IF NOT EXISTS idx_medicine_adjustments_batch ON medicine_adjustments(batch_id)`,
}

func runInitDB(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	log.Println("Schema initialized")
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Operational tooling: schema init, reference data download, inventory seeding",
		Commands: []*cli.Command{
			{
				Name:   "init-db",
				Usage:  "Create the inventory schema",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runInitDB,
			},
			{
				Name:   "reference",
				Usage:  "Download the BMI and height-for-age band tables from object storage",
				Flags:  referenceFlags(),
				Action: runReferenceDownload,
			},
			{
				Name:   "inventory",
				Usage:  "Seed medicine items and batch receipts from CSV files",
				Flags:  append([]cli.Flag{newDBURLFlag()}, inventoryFlags()...),
				Before: initDB,
				After:  closeDB,
				Action: runInventorySeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
