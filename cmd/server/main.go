package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"rendix/internal/config"
	"rendix/internal/domain"
	"rendix/internal/extractor"
	_ "rendix/internal/extractor/ollama"
	_ "rendix/internal/extractor/openrouter"
	"rendix/internal/handler"
	"rendix/internal/metrics"
	"rendix/internal/pipeline"
	"rendix/internal/port"
	"rendix/internal/repository/postgres"
	"rendix/internal/resolver"
	"rendix/internal/router"
	"rendix/internal/schema"
	"rendix/internal/service"
	s3storage "rendix/internal/storage/s3"
	"rendix/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	driverRepo := postgres.NewDriverRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Build the completion provider chain
	completer, err := buildCompleter(&cfg.Completer, cfg.Extractor.MaxInFlight)
	if err != nil {
		return fmt.Errorf("failed to build completer: %w", err)
	}

	// Compile record schemas for validation
	schemas := make([]schema.RecordSchema, 0, len(domain.AllowedDocumentTypes))
	for dt := range domain.AllowedDocumentTypes {
		s, err := schema.ForDocumentType(dt)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		schemas = append(schemas, s)
	}
	engine, err := validator.NewEngine(schemas...)
	if err != nil {
		return fmt.Errorf("failed to compile schemas: %w", err)
	}

	// Assemble the analysis pipeline
	ext := extractor.NewExtractor(completer, engine, map[domain.DocumentType]string{
		domain.DocumentTypeReceipt:        cfg.Extractor.ModelReceipt,
		domain.DocumentTypeFuelDelivery:   cfg.Extractor.ModelFuelDelivery,
		domain.DocumentTypeReconciliation: cfg.Extractor.ModelReconciliation,
	})

	resolverModel := cfg.Resolver.Model
	if resolverModel == "" {
		resolverModel = cfg.Extractor.ModelReconciliation
	}
	res := resolver.NewResolver(completer, driverRepo, resolverModel, cfg.Resolver.MinSimilarity)

	runner := pipeline.NewRunner(map[domain.DocumentType][]pipeline.Stage{
		domain.DocumentTypeReceipt: {
			&pipeline.ExtractStage{Extractor: ext},
		},
		domain.DocumentTypeFuelDelivery: {
			&pipeline.ExtractStage{Extractor: ext},
		},
		domain.DocumentTypeReconciliation: {
			&pipeline.ExtractStage{Extractor: ext},
			&pipeline.ResolveStage{Resolver: res, SourceKey: "chofer"},
		},
	})

	m := metrics.New()

	// Initialize services
	analysisSvc := service.NewAnalysisService(runner, m)
	imageSvc := service.NewImageService(s3Client, &cfg.S3, m)
	exportSvc := service.NewExportService(m)
	driverSvc := service.NewDriverService(driverRepo)

	// Initialize handlers
	analyzeH := handler.NewAnalyzeHandler(analysisSvc)
	imageH := handler.NewImageHandler(imageSvc)
	exportH := handler.NewExportHandler(exportSvc)
	driverH := handler.NewDriverHandler(driverSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(analyzeH, imageH, exportH, driverH, healthH, m, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// buildCompleter assembles the configured providers into a single completer:
// a fallback chain when more than one is configured, wrapped with an
// in-flight limit.
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
		log.Printf("completer fallback chain: %v", names)
		completer = extractor.NewFallbackCompleter(completers, names)
	}
	return extractor.NewLimitedCompleter(completer, maxInFlight), nil
}
