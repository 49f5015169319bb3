package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"docqa/internal/contextutil"
	"docqa/internal/ingest"
)

// Ingestor runs the ingestion pipeline for one document.
type Ingestor interface {
	IngestDocument(ctx context.Context, bucket, key string) (ingest.Result, error)
}

// IngestHandler handles HTTP requests to ingest documents from object
// storage.
type IngestHandler struct {
	pipeline Ingestor
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(pipeline Ingestor) *IngestHandler {
	return &IngestHandler{pipeline: pipeline}
}

// DocumentRef locates a document in object storage.
type DocumentRef struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// IngestRequest is the HTTP request payload for ingestion. Either the
// Documents list or the single Bucket/Key pair may be used.
type IngestRequest struct {
	Documents []DocumentRef `json:"documents,omitempty"`
	Bucket    string        `json:"bucket,omitempty"`
	Key       string        `json:"key,omitempty"`
}

// IngestResponse reports per-document ingestion outcomes.
type IngestResponse struct {
	Message string          `json:"message"`
	Results []ingest.Result `json:"results"`
}

// ServeHTTP ingests the referenced documents in request order. A failure
// on any document aborts the run with a generic 500; completed documents
// stay ingested (the vector store upserts are idempotent by ID, so a retry
// rewrites them).
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	refs := req.Documents
	if len(refs) == 0 && req.Key != "" {
		refs = []DocumentRef{{Bucket: req.Bucket, Key: req.Key}}
	}
	if len(refs) == 0 {
		writeError(w, http.StatusBadRequest, "At least one document is required")
		return
	}
	for _, ref := range refs {
		if ref.Bucket == "" || ref.Key == "" {
			writeError(w, http.StatusBadRequest, "Document bucket and key are required")
			return
		}
	}

	results := make([]ingest.Result, 0, len(refs))
	for _, ref := range refs {
		logger.InfoContext(ctx, "ingesting document", "bucket", ref.Bucket, "key", ref.Key)

		result, err := h.pipeline.IngestDocument(ctx, ref.Bucket, ref.Key)
		if err != nil {
			logger.ErrorContext(ctx, "ingestion failed", "bucket", ref.Bucket, "key", ref.Key, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		results = append(results, result)
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Message: "Ingestion complete",
		Results: results,
	})
}
