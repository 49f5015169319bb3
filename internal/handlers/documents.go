package handlers

import (
	"net/http"
	"time"

	"docqa/internal/contextutil"
	"docqa/internal/storage"
)

// DocumentsHandler lists ingested documents from the ledger.
type DocumentsHandler struct {
	docRepo storage.DocumentStore
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(docRepo storage.DocumentStore) *DocumentsHandler {
	return &DocumentsHandler{docRepo: docRepo}
}

// DocumentResponse is one ingested document in the listing.
type DocumentResponse struct {
	Source     string    `json:"source"`
	Chunks     int       `json:"chunks"`
	Pages      int       `json:"pages"`
	IngestedAt time.Time `json:"ingested_at"`
}

// DocumentsResponse is the document listing payload.
type DocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	records, err := h.docRepo.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	documents := make([]DocumentResponse, 0, len(records))
	for _, rec := range records {
		documents = append(documents, DocumentResponse{
			Source:     rec.SourceKey,
			Chunks:     rec.ChunkCount,
			Pages:      rec.PageCount,
			IngestedAt: rec.IngestedAt,
		})
	}

	writeJSON(w, http.StatusOK, DocumentsResponse{Documents: documents})
}
