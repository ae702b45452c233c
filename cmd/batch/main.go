// Command batch analyzes a list of document photos and writes the results to
// a spreadsheet. The input file holds one image URL per line; blank lines and
// lines starting with # are ignored. Fuel delivery runs produce an XLSX
// workbook, reconciliation runs an expense CSV, and receipt runs JSON lines.
// Usage: go run ./cmd/batch -file urls.txt [-type fuel_delivery] [-out remitos.xlsx]
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "rendix/internal/extractor/ollama"
	_ "rendix/internal/extractor/openrouter"

	"rendix/internal/config"
	"rendix/internal/domain"
	"rendix/internal/export"
	"rendix/internal/extractor"
	"rendix/internal/pipeline"
	"rendix/internal/port"
	"rendix/internal/repository/postgres"
	"rendix/internal/resolver"
	"rendix/internal/schema"
	"rendix/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		file    = flag.String("file", "", "path to a file with one image URL per line (required)")
		docType = flag.String("type", string(domain.DocumentTypeFuelDelivery), "document type: receipt, fuel_delivery, or reconciliation_sheet")
		out     = flag.String("out", "", "output path (default: derived from document type)")
		hint    = flag.String("hint", "", "optional conductor context applied to every image")
	)
	flag.Parse()

	if *file == "" {
		return fmt.Errorf("-file is required")
	}
	dt := domain.DocumentType(*docType)
	if !dt.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownDocumentType, *docType)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	urls, err := readURLs(*file)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no image URLs in %s", *file)
	}

	runner, cleanup, err := buildRunner(cfg, dt)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	records := make([]domain.Record, 0, len(urls))
	failed := 0

	for i, url := range urls {
		st, err := runner.Run(ctx, dt, domain.ExtractionRequest{ImageReference: url, FreeTextHint: *hint})
		if err != nil {
			log.Printf("WARN: skipping image %d/%d (%s): %v", i+1, len(urls), url, err)
			failed++
			continue
		}
		records = append(records, st.Record)
		log.Printf("analyzed %d/%d (model %s)", i+1, len(urls), st.Model)
	}

	if len(records) == 0 {
		return fmt.Errorf("all %d images failed", len(urls))
	}

	outPath, err := writeOutput(dt, records, *out)
	if err != nil {
		return err
	}

	log.Printf("Wrote %d records to %s (%d images failed)", len(records), outPath, failed)
	return nil
}

// buildRunner wires the pipeline for one document type. The driver directory
// is only connected for reconciliation sheets; other types never resolve.
func buildRunner(cfg *config.Config, dt domain.DocumentType) (*pipeline.Runner, func(), error) {
	cleanup := func() {}

	completer, err := buildCompleter(&cfg.Completer, cfg.Extractor.MaxInFlight)
	if err != nil {
		return nil, nil, fmt.Errorf("building completer: %w", err)
	}

	s, err := schema.ForDocumentType(dt)
	if err != nil {
		return nil, nil, err
	}
	engine, err := validator.NewEngine(s)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling schema: %w", err)
	}

	ext := extractor.NewExtractor(completer, engine, map[domain.DocumentType]string{
		domain.DocumentTypeReceipt:        cfg.Extractor.ModelReceipt,
		domain.DocumentTypeFuelDelivery:   cfg.Extractor.ModelFuelDelivery,
		domain.DocumentTypeReconciliation: cfg.Extractor.ModelReconciliation,
	})

	stages := []pipeline.Stage{&pipeline.ExtractStage{Extractor: ext}}

	if dt == domain.DocumentTypeReconciliation {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		cleanup = func() { _ = db.Close() }

		resolverModel := cfg.Resolver.Model
		if resolverModel == "" {
			resolverModel = cfg.Extractor.ModelReconciliation
		}
		res := resolver.NewResolver(completer, postgres.NewDriverRepo(db), resolverModel, cfg.Resolver.MinSimilarity)
		stages = append(stages, &pipeline.ResolveStage{Resolver: res, SourceKey: "chofer"})
	}

	return pipeline.NewRunner(map[domain.DocumentType][]pipeline.Stage{dt: stages}), cleanup, nil
}

func buildCompleter(cfg *config.CompleterConfig, maxInFlight int64) (port.StructuredCompleter, error) {
	var (
		completers []port.StructuredCompleter
		names      []string
	)
	for _, pc := range []*config.CompleterProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig(), cfg.TertiaryConfig()} {
		if pc == nil {
			continue
		}
		c, err := extractor.NewCompleter(pc)
		if err != nil {
			return nil, err
		}
		completers = append(completers, c)
		names = append(names, pc.Provider)
	}
	if len(completers) == 0 {
		return nil, fmt.Errorf("no completion provider configured")
	}

	completer := completers[0]
	if len(completers) > 1 {
		completer = extractor.NewFallbackCompleter(completers, names)
	}
	return extractor.NewLimitedCompleter(completer, maxInFlight), nil
}

func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open URL list: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read URL list: %w", err)
	}
	return urls, nil
}

func writeOutput(dt domain.DocumentType, records []domain.Record, outPath string) (string, error) {
	switch dt {
	case domain.DocumentTypeFuelDelivery:
		if outPath == "" {
			outPath = export.BuildFilename("remitos", "xlsx")
		}
		data, err := export.FuelDeliveriesXLSX(records)
		if err != nil {
			return "", fmt.Errorf("building XLSX: %w", err)
		}
		return outPath, os.WriteFile(outPath, data, 0o644)

	case domain.DocumentTypeReconciliation:
		if outPath == "" {
			outPath = export.BuildFilename("rendiciones", "csv")
		}
		f, err := os.Create(outPath)
		if err != nil {
			return "", fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.Write(export.BOM); err != nil {
			return "", err
		}
		w := export.NewWriter(f)
		if err := w.WriteHeader(); err != nil {
			return "", err
		}
		if err := w.WriteReconciliations(records); err != nil {
			return "", err
		}
		w.Flush()
		return outPath, w.Error()

	default:
		if outPath == "" {
			outPath = export.BuildFilename("boletas", "jsonl")
		}
		f, err := os.Create(outPath)
		if err != nil {
			return "", fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()

		enc := json.NewEncoder(f)
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return "", fmt.Errorf("encode record: %w", err)
			}
		}
		return outPath, nil
	}
}
