package services

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/docuflow/internal/chunking"
	"github.com/markdave123-py/docuflow/internal/core"
	"github.com/markdave123-py/docuflow/internal/models"
)

type DocumentService struct {
	db      core.DbClient
	storage core.ObjectClient
	sink    core.ChunkSink
	bucket  string
}

func NewDocumentService(db core.DbClient, storage core.ObjectClient, sink core.ChunkSink, bucket string) *DocumentService {
	return &DocumentService{db: db, storage: storage, sink: sink, bucket: bucket}
}

func (s *DocumentService) UploadAndCreate(ctx context.Context, userID, filename, contentType string, data io.Reader) (*models.Document, error) {
	docID := uuid.NewString()
	key := s.objectKey(userID, docID, filename)

	url, err := s.storage.UploadFile(ctx, s.bucket, key, data, contentType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &models.Document{
		ID:          docID,
		UserID:      userID,
		FileName:    filename,
		StorageURL:  url,
		SourceType:  "upload",
		ContentType: contentType,
		Status:      models.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.db.GetDocumentByID(ctx, id)
}

func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	return s.db.ListDocumentsByUser(ctx, userID)
}

func (s *DocumentService) SetStatus(ctx context.Context, docID string, status string) error {
	return s.db.UpdateDocumentStatus(ctx, docID, status)
}

// Chunks returns the stored chunk set for a processed document.
func (s *DocumentService) Chunks(ctx context.Context, doc *models.Document) ([]chunking.Chunk, error) {
	return s.sink.Load(ctx, doc)
}

// Structure re-assembles the chunk text and reports the detected headers
// and list items.
func (s *DocumentService) Structure(ctx context.Context, doc *models.Document) (*chunking.DocumentStructure, error) {
	chunks, err := s.sink.Load(ctx, doc)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for i, ch := range chunks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(ch.Content)
	}
	return chunking.AnalyzeStructure(sb.String()), nil
}

// objectKey creates a consistent S3 key layout.
func (s *DocumentService) objectKey(userID, docID, filename string) string {
	filename = strings.TrimSpace(filename)
	filename = strings.ReplaceAll(filename, " ", "_")
	return path.Join("users", userID, "documents", docID, filename)
}
