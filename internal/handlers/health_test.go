package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeCollectionChecker struct {
	exists bool
	err    error
}

func (f *fakeCollectionChecker) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return f.exists, f.err
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error { return f.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name        string
		vectorStore *fakeCollectionChecker
		objectStore *fakePinger
		wantCode    int
		wantStatus  string
		wantIssues  int
	}{
		{
			name:        "all healthy",
			vectorStore: &fakeCollectionChecker{exists: true},
			objectStore: &fakePinger{},
			wantCode:    http.StatusOK,
			wantStatus:  "healthy",
		},
		{
			name:        "collection missing",
			vectorStore: &fakeCollectionChecker{exists: false},
			objectStore: &fakePinger{},
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "degraded",
			wantIssues:  1,
		},
		{
			name:        "vector store unreachable",
			vectorStore: &fakeCollectionChecker{err: errors.New("connection refused")},
			objectStore: &fakePinger{},
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "degraded",
			wantIssues:  1,
		},
		{
			name:        "everything down",
			vectorStore: &fakeCollectionChecker{err: errors.New("connection refused")},
			objectStore: &fakePinger{err: errors.New("connection refused")},
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "unhealthy",
			wantIssues:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.vectorStore, tt.objectStore, "documents")

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}

			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if len(resp.Issues) != tt.wantIssues {
				t.Errorf("issues = %v, want %d", resp.Issues, tt.wantIssues)
			}
			if len(resp.Checks) != 2 {
				t.Errorf("checks = %v, want entries for both dependencies", resp.Checks)
			}
			if resp.Timestamp == "" {
				t.Error("timestamp missing")
			}
		})
	}
}
