package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/markdave123-py/docuflow/internal/chunking"
	"github.com/markdave123-py/docuflow/internal/config"
	"github.com/markdave123-py/docuflow/internal/core"
	"github.com/markdave123-py/docuflow/internal/core/chunkstore"
	db "github.com/markdave123-py/docuflow/internal/core/database"
	"github.com/markdave123-py/docuflow/internal/core/extraction"
	objectclient "github.com/markdave123-py/docuflow/internal/core/object-client"
	"github.com/markdave123-py/docuflow/internal/core/ocr"
	"github.com/markdave123-py/docuflow/internal/services"
)

type App struct {
	DBClient     core.DbClient
	ObjectClient core.ObjectClient
	Ingestor     core.Ingestor
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	objClient, err := objectclient.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	chain := buildOCRChain(appCtx, cfg)
	extractor := extraction.New(chain, int64(cfg.MaxFileMB))

	chunker, err := chunking.New(chunking.Config{
		MaxSize: cfg.ChunkSize,
		Overlap: cfg.ChunkOverlap,
	})
	if err != nil {
		return nil, fmt.Errorf("chunker config: %w", err)
	}

	sink := chunkstore.NewS3ChunkStore(objClient, cfg.BucketName)

	userService := services.NewUserService(dbClient)
	documentService := services.NewDocumentService(dbClient, objClient, sink, cfg.BucketName)
	ingestService := services.NewIngestService(dbClient, objClient, extractor, chunker, sink)
	ingestService.Start(ctx, cfg.IngestWorkers)

	server := NewServer(cfg, userService, documentService, ingestService, extractor, chunker)

	return &App{
		DBClient:     dbClient,
		ObjectClient: objClient,
		Ingestor:     ingestService,
		Server:       server,
	}, nil
}

// buildOCRChain assembles the OCR fallback order from the configured
// capabilities: Vision first when a key is present, then local Tesseract.
func buildOCRChain(ctx context.Context, cfg *config.Config) *ocr.Chain {
	var engines []ocr.Engine

	if cfg.VisionAPIKey != "" {
		visionEngine, err := ocr.NewVisionEngine(ctx, cfg.VisionAPIKey)
		if err != nil {
			log.Printf("WARN: vision engine unavailable: %v", err)
		} else {
			engines = append(engines, visionEngine)
		}
	}
	if cfg.TesseractEnabled {
		engines = append(engines, ocr.NewTesseractEngine())
	}

	if len(engines) == 0 {
		log.Println("No OCR engine configured; image text will be placeholders.")
	}
	return ocr.NewChain(engines...)
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
