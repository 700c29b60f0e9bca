package core

import (
	"context"
	"io"

	"github.com/markdave123-py/docuflow/internal/chunking"
	"github.com/markdave123-py/docuflow/internal/core/extraction"
	"github.com/markdave123-py/docuflow/internal/models"
)

// DbClient defines all persistence operations your services will need.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) (err error)
	GetUserByEmail(ctx context.Context, email string) (user *models.User, err error)

	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	ListDocumentsByUser(ctx context.Context, userID string) ([]models.Document, error)
	UpdateDocumentStatus(ctx context.Context, id string, status string) error

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
// It's abstract so you can replace AWS with MinIO, GCP, etc. easily.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)

	GetObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// ContentExtractor turns a local file into its unified representation.
type ContentExtractor interface {
	Extract(ctx context.Context, path string) (*extraction.Content, error)
}

// ChunkSink is where finished chunks land; Load reads them back for
// preview and structure analysis.
type ChunkSink interface {
	Store(ctx context.Context, doc *models.Document, chunks []chunking.Chunk) error
	Load(ctx context.Context, doc *models.Document) ([]chunking.Chunk, error)
}

// Ingestor schedules uploaded documents for background processing.
type Ingestor interface {
	Start(ctx context.Context, numWorkers int)
	Enqueue(docID string)
	ProcessOne(ctx context.Context, docID string) error
}
