package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docqa/internal/storage"
)

type fakeDocumentStore struct {
	records []storage.DocumentRecord
	err     error
}

func (f *fakeDocumentStore) GetByKey(ctx context.Context, sourceKey string) (*storage.DocumentRecord, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeDocumentStore) Upsert(ctx context.Context, record *storage.DocumentRecord) error {
	return nil
}

func (f *fakeDocumentStore) ListAll(ctx context.Context) ([]storage.DocumentRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestDocumentsHandler_List(t *testing.T) {
	ingested := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeDocumentStore{records: []storage.DocumentRecord{
		{SourceKey: "handbook.pdf", Hash: "abc", ChunkCount: 12, PageCount: 4, IngestedAt: ingested},
		{SourceKey: "policy.pdf", Hash: "def", ChunkCount: 3, PageCount: 1, IngestedAt: ingested},
	}}
	handler := NewDocumentsHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp DocumentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(resp.Documents))
	}
	first := resp.Documents[0]
	if first.Source != "handbook.pdf" || first.Chunks != 12 || first.Pages != 4 {
		t.Errorf("first document = %+v", first)
	}
	if !first.IngestedAt.Equal(ingested) {
		t.Errorf("ingested_at = %v, want %v", first.IngestedAt, ingested)
	}
}

func TestDocumentsHandler_Empty(t *testing.T) {
	handler := NewDocumentsHandler(&fakeDocumentStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp DocumentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Documents == nil || len(resp.Documents) != 0 {
		t.Errorf("documents = %v, want empty array", resp.Documents)
	}
}

func TestDocumentsHandler_StoreError(t *testing.T) {
	handler := NewDocumentsHandler(&fakeDocumentStore{err: errors.New("database locked")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
