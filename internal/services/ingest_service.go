package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/docuflow/internal/chunking"
	"github.com/markdave123-py/docuflow/internal/core"
	"github.com/markdave123-py/docuflow/internal/core/extraction"
	"github.com/markdave123-py/docuflow/internal/models"
)

// IngestService pulls document IDs off a bounded queue and runs each one
// through fetch, extract, chunk and store.
type IngestService struct {
	db        core.DbClient
	obj       core.ObjectClient
	extractor core.ContentExtractor
	chunker   *chunking.Chunker
	sink      core.ChunkSink

	jobs    chan string
	workers *errgroup.Group
}

// NewIngestService constructs the service with a bounded job queue (64).
func NewIngestService(db core.DbClient, obj core.ObjectClient, extractor core.ContentExtractor, chunker *chunking.Chunker, sink core.ChunkSink) *IngestService {
	return &IngestService{
		db: db, obj: obj, extractor: extractor, chunker: chunker, sink: sink,
		jobs: make(chan string, 64),
	}
}

// Start launches numWorkers goroutines reading from the jobs channel.
func (s *IngestService) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	s.workers = g
	for w := 1; w <= numWorkers; w++ {
		w := w
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					log.Printf("IngestService: worker %d shutting down", w)
					return nil
				case docID := <-s.jobs:
					log.Printf("IngestService: worker %d processing document %s", w, docID)
					if err := s.ProcessOne(gctx, docID); err != nil {
						log.Printf("IngestService: document %s: %v", docID, err)
					}
				}
			}
		})
	}
}

// Wait blocks until all workers have exited.
func (s *IngestService) Wait() {
	if s.workers != nil {
		_ = s.workers.Wait()
	}
}

// Enqueue schedules a document ID for ingestion.
// If the queue is full, this call will block until space frees up.
func (s *IngestService) Enqueue(docID string) {
	s.jobs <- docID
}

// ProcessOne runs the full pipeline for a single document ID and records
// the resulting status transition (processing, then ready or failed).
// Processing is bounded by a 5 minute timeout on top of the caller's
// cancellation.
func (s *IngestService) ProcessOne(ctx context.Context, docID string) error {
	proctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	doc, err := s.db.GetDocumentByID(proctx, docID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document not found: %s", docID)
	}

	if err := s.db.UpdateDocumentStatus(proctx, docID, models.StatusProcessing); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	chunks, files, err := s.runPipeline(proctx, doc)
	if err != nil {
		_ = s.db.UpdateDocumentStatus(proctx, docID, models.StatusFailed)
		return err
	}

	if err := s.sink.Store(proctx, doc, chunks); err != nil {
		_ = s.db.UpdateDocumentStatus(proctx, docID, models.StatusFailed)
		return fmt.Errorf("store chunks: %w", err)
	}

	s.archiveImages(proctx, doc, files)

	return s.db.UpdateDocumentStatus(proctx, docID, models.StatusReady)
}

// archiveImages stores extracted image bytes next to the source file.
// Best effort; a failed upload never fails the document.
func (s *IngestService) archiveImages(ctx context.Context, doc *models.Document, files []extraction.ImageFile) {
	bucket, key := parseObjectURL(doc.StorageURL)
	base := path.Dir(key)
	for _, f := range files {
		imgKey := path.Join(base, "images", f.Name)
		if _, err := s.obj.UploadFile(ctx, bucket, imgKey, bytes.NewReader(f.Data), "application/octet-stream"); err != nil {
			log.Printf("IngestService: archive image %s: %v", f.Name, err)
		}
	}
}

// runPipeline fetches the original file, extracts its content and chunks
// it according to the document type.
func (s *IngestService) runPipeline(ctx context.Context, doc *models.Document) ([]chunking.Chunk, []extraction.ImageFile, error) {
	bucket, key := parseObjectURL(doc.StorageURL)

	data, err := s.obj.GetFile(ctx, bucket, key)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch object: %w", err)
	}

	// The format parsers work on local files, so stage the bytes under the
	// original file name to preserve the extension and stem.
	tmpDir, err := os.MkdirTemp("", "docuflow-ingest-")
	if err != nil {
		return nil, nil, fmt.Errorf("scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	localPath := filepath.Join(tmpDir, filepath.Base(doc.FileName))
	if err := os.WriteFile(localPath, data, 0o600); err != nil {
		return nil, nil, fmt.Errorf("stage file: %w", err)
	}

	content, err := s.extractor.Extract(ctx, localPath)
	if err != nil {
		return nil, nil, fmt.Errorf("extract content: %w", err)
	}

	docType := chunking.DetectType(doc.FileName)
	chunks := s.chunker.ChunkDocument(content.Text, doc.FileName, docType, content.Images, content.Links)
	return chunks, content.Files, nil
}

// parseObjectURL extracts the bucket and key from a virtual-hosted-style
// S3 URL such as https://my-bucket.s3.us-east-2.amazonaws.com/path/file.pdf.
func parseObjectURL(u string) (bucket, key string) {
	hostPath := strings.SplitN(strings.TrimPrefix(u, "https://"), "/", 2)
	host := hostPath[0]
	if len(hostPath) == 2 {
		key = hostPath[1]
	}
	parts := strings.Split(host, ".")
	if len(parts) > 0 {
		bucket = parts[0]
	}
	return bucket, key
}
