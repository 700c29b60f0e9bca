// Package chunkstore persists finished chunk sets as JSON objects next to
// the source file in object storage.
package chunkstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/markdave123-py/docuflow/internal/chunking"
	"github.com/markdave123-py/docuflow/internal/core"
	"github.com/markdave123-py/docuflow/internal/models"
)

type S3ChunkStore struct {
	storage core.ObjectClient
	bucket  string
}

func NewS3ChunkStore(storage core.ObjectClient, bucket string) *S3ChunkStore {
	return &S3ChunkStore{storage: storage, bucket: bucket}
}

// Store writes the chunk set for a document as one JSON object.
func (s *S3ChunkStore) Store(ctx context.Context, doc *models.Document, chunks []chunking.Chunk) error {
	data, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}

	key := chunkKey(doc)
	if _, err := s.storage.UploadFile(ctx, s.bucket, key, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("store chunks for %s: %w", doc.ID, err)
	}
	return nil
}

// Load reads a previously stored chunk set back.
func (s *S3ChunkStore) Load(ctx context.Context, doc *models.Document) ([]chunking.Chunk, error) {
	data, err := s.storage.GetFile(ctx, s.bucket, chunkKey(doc))
	if err != nil {
		return nil, fmt.Errorf("load chunks for %s: %w", doc.ID, err)
	}

	var chunks []chunking.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("decode chunks for %s: %w", doc.ID, err)
	}
	return chunks, nil
}

func chunkKey(doc *models.Document) string {
	return path.Join("users", doc.UserID, "documents", doc.ID, "chunks.json")
}
