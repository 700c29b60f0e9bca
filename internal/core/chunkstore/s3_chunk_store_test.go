package chunkstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/docuflow/internal/chunking"
	"github.com/markdave123-py/docuflow/internal/models"
)

type memObjectClient struct {
	objects map[string][]byte
}

func (m *memObjectClient) UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (string, error) {
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.objects[key] = body
	return "https://" + bucket + "/" + key, nil
}

func (m *memObjectClient) DeleteFile(ctx context.Context, bucket, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memObjectClient) GetFile(ctx context.Context, bucket, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (m *memObjectClient) GetObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	data, err := m.GetFile(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestS3ChunkStore_RoundTrip(t *testing.T) {
	client := &memObjectClient{objects: map[string][]byte{}}
	store := NewS3ChunkStore(client, "test-bucket")
	doc := &models.Document{ID: "doc-1", UserID: "user-1"}
	chunks := []chunking.Chunk{
		{
			Content:  "--- Page 1 --- text",
			Metadata: map[string]any{"chunk_id": "page_1", "page": 1},
			Images:   []chunking.ExtractedImage{{Name: "doc_page1_img1", OCRText: "caption"}},
			Links:    []string{"https://example.com"},
		},
	}

	require.NoError(t, store.Store(context.Background(), doc, chunks))
	assert.Contains(t, client.objects, "users/user-1/documents/doc-1/chunks.json")

	loaded, err := store.Load(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, chunks[0].Content, loaded[0].Content)
	assert.Equal(t, "page_1", loaded[0].Metadata["chunk_id"])
	assert.Equal(t, chunks[0].Images, loaded[0].Images)
	assert.Equal(t, chunks[0].Links, loaded[0].Links)
}

func TestS3ChunkStore_LoadMissing(t *testing.T) {
	store := NewS3ChunkStore(&memObjectClient{objects: map[string][]byte{}}, "test-bucket")

	_, err := store.Load(context.Background(), &models.Document{ID: "doc-x", UserID: "u"})

	assert.Error(t, err)
}
