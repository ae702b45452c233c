// Command seeddrivers imports a driver roster spreadsheet into the drivers
// table. Column A holds the full name, column B the identifier; the first row
// is treated as a header and skipped.
// Usage: go run ./cmd/seeddrivers -file roster.xlsx [-sheet Choferes]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"rendix/internal/config"
	"rendix/internal/domain"
	"rendix/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		file  = flag.String("file", "", "path to the roster XLSX file (required)")
		sheet = flag.String("sheet", "", "sheet name (default: first sheet)")
	)
	flag.Parse()

	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := postgres.NewDriverRepo(db)

	f, err := excelize.OpenFile(*file)
	if err != nil {
		return fmt.Errorf("open roster file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := *sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheetName, err)
	}

	ctx := context.Background()
	imported := 0
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}

		fullName := strings.TrimSpace(cellVal(row, 0))
		identifier := strings.TrimSpace(cellVal(row, 1))
		if fullName == "" || identifier == "" {
			if fullName != "" || identifier != "" {
				log.Printf("WARN: skipping row %d: both name and identifier are required", i+1)
				skipped++
			}
			continue
		}

		entry := domain.DirectoryEntry{FullName: fullName, Identifier: identifier}
		if err := repo.Upsert(ctx, entry); err != nil {
			log.Printf("WARN: skipping row %d (%s): %v", i+1, identifier, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Imported %d drivers from %s (%d rows skipped)", imported, sheetName, skipped)
	return nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
