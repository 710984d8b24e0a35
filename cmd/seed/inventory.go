package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

func inventoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "items",
			Usage: "CSV file of medicine items (id,name,category,unit,overall_quantity)",
			Value: "./data/seeds/medicine_items.csv",
		},
		&cli.StringFlag{
			Name:  "ins",
			Usage: "CSV file of batch receipts (batch_id,item_id,quantity,expiration_date,receipt_id)",
			Value: "./data/seeds/medicine_ins.csv",
		},
	}
}

func runInventorySeed(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	itemCount, err := seedItems(c, db, c.String("items"))
	if err != nil {
		return err
	}
	log.Printf("Seeded %d medicine items", itemCount)

	inCount, err := seedIns(c, db, c.String("ins"))
	if err != nil {
		return err
	}
	log.Printf("Seeded %d batch receipts", inCount)

	return nil
}

func seedItems(c *cli.Context, db *sql.DB, path string) (int, error) {
	count := 0
	err := forEachCSVRow(path, 5, func(fields []string) error {
		qty, err := strconv.Atoi(fields[4])
		if err != nil {
			return fmt.Errorf("invalid overall_quantity %q: %w", fields[4], err)
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO medicine_items (id, name, category, unit, overall_quantity)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    category = EXCLUDED.category,
			    unit = EXCLUDED.unit,
			    overall_quantity = EXCLUDED.overall_quantity,
			    updated_at = NOW()
		`, fields[0], fields[1], fields[2], fields[3], qty)
		if err != nil {
			return err
		}

		count++
		return nil
	})
	return count, err
}

func seedIns(c *cli.Context, db *sql.DB, path string) (int, error) {
	count := 0
	err := forEachCSVRow(path, 5, func(fields []string) error {
		qty, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", fields[2], err)
		}

		expiration, err := time.Parse("2006-01-02", fields[3])
		if err != nil {
			return fmt.Errorf("invalid expiration_date %q: %w", fields[3], err)
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO medicine_ins (batch_id, item_id, quantity, expiration_date, receipt_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (batch_id) DO UPDATE
			SET quantity = EXCLUDED.quantity,
			    expiration_date = EXCLUDED.expiration_date,
			    receipt_id = EXCLUDED.receipt_id
		`, fields[0], fields[1], qty, expiration, fields[4])
		if err != nil {
			return err
		}

		count++
		return nil
	})
	return count, err
}

// forEachCSVRow streams a CSV file, skipping the header row.
func forEachCSVRow(path string, wantFields int, fn func(fields []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, line+1, err)
		}
		line++
		if line == 1 {
			continue
		}
		if len(record) != wantFields {
			return fmt.Errorf("%s line %d: expected %d fields, got %d", path, line, wantFields, len(record))
		}
		if err := fn(record); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}

	return nil
}
