package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	middleware "github.com/markdave123-py/docuflow/internal/api/middlewares"
	"github.com/markdave123-py/docuflow/internal/chunking"
	"github.com/markdave123-py/docuflow/internal/core"
	"github.com/markdave123-py/docuflow/internal/core/extraction"
	"github.com/markdave123-py/docuflow/internal/models"
	"github.com/markdave123-py/docuflow/internal/services"
)

type DocumentHandler struct {
	documents *services.DocumentService
	ingestor  core.Ingestor
	extractor core.ContentExtractor
	chunker   *chunking.Chunker
}

func NewDocumentHandler(documents *services.DocumentService, ingestor core.Ingestor, extractor core.ContentExtractor, chunker *chunking.Chunker) *DocumentHandler {
	return &DocumentHandler{documents: documents, ingestor: ingestor, extractor: extractor, chunker: chunker}
}

// UploadDocument handles file upload, DB insert, and background processing.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {

	r.ParseMultipartForm(52 << 20)

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Sanitize filename to prevent path traversal or invalid characters
	cleanFilename := filepath.Base(header.Filename)
	if !extraction.SupportedExt(cleanFilename) {
		http.Error(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(cleanFilename)), http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploadctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	doc, err := h.documents.UploadAndCreate(uploadctx, userID, cleanFilename, contentType, file)
	if err != nil {
		http.Error(w, fmt.Sprintf("upload failed: %v", err), http.StatusInternalServerError)
		return
	}

	h.ingestor.Enqueue(doc.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// PreviewDocument runs the pipeline synchronously on an uploaded file and
// returns the chunks and structure outline without persisting anything.
func (h *DocumentHandler) PreviewDocument(w http.ResponseWriter, r *http.Request) {

	r.ParseMultipartForm(52 << 20)

	if _, ok := middleware.UserID(r.Context()); !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	cleanFilename := filepath.Base(header.Filename)
	if !extraction.SupportedExt(cleanFilename) {
		http.Error(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(cleanFilename)), http.StatusBadRequest)
		return
	}

	tmpDir, err := os.MkdirTemp("", "docuflow-preview-")
	if err != nil {
		http.Error(w, "could not stage file", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	localPath := filepath.Join(tmpDir, cleanFilename)
	dst, err := os.Create(localPath)
	if err != nil {
		http.Error(w, "could not stage file", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		http.Error(w, "could not stage file", http.StatusInternalServerError)
		return
	}
	dst.Close()

	content, err := h.extractor.Extract(r.Context(), localPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("extraction failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	docType := chunking.DetectType(cleanFilename)
	chunks := h.chunker.ChunkDocument(content.Text, cleanFilename, docType, content.Images, content.Links)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"chunks":    chunks,
		"structure": chunking.AnalyzeStructure(content.Text),
		"links":     content.Links,
	})
}

func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return
	}

	documents, err := h.documents.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documents)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.ownedDocument(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// GetDocumentChunks returns the chunk set of a processed document.
func (h *DocumentHandler) GetDocumentChunks(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.ownedDocument(w, r)
	if !ok {
		return
	}
	if doc.Status != models.StatusReady {
		http.Error(w, fmt.Sprintf("document not ready: status is %q", doc.Status), http.StatusConflict)
		return
	}

	chunks, err := h.documents.Chunks(r.Context(), doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chunks)
}

// GetDocumentStructure reports detected headers and list items.
func (h *DocumentHandler) GetDocumentStructure(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.ownedDocument(w, r)
	if !ok {
		return
	}
	if doc.Status != models.StatusReady {
		http.Error(w, fmt.Sprintf("document not ready: status is %q", doc.Status), http.StatusConflict)
		return
	}

	structure, err := h.documents.Structure(r.Context(), doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(structure)
}

// ownedDocument loads the {id} document and verifies it belongs to the
// authenticated user. It writes the error response itself.
func (h *DocumentHandler) ownedDocument(w http.ResponseWriter, r *http.Request) (*models.Document, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "user_id not found in context", http.StatusUnauthorized)
		return nil, false
	}

	docID := chi.URLParam(r, "id")
	doc, err := h.documents.Get(r.Context(), docID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if doc == nil || doc.UserID != userID {
		http.Error(w, "document not found", http.StatusNotFound)
		return nil, false
	}
	return doc, true
}
