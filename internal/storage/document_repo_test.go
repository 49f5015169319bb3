package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestDocumentRepo_GetByKey_NotFound(t *testing.T) {
	repo := NewDocumentRepo(setupTestDB(t))

	_, err := repo.GetByKey(context.Background(), "missing.pdf")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByKey() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepo_UpsertAndGet(t *testing.T) {
	repo := NewDocumentRepo(setupTestDB(t))
	ctx := context.Background()

	record := &DocumentRecord{
		SourceKey:  "handbook.pdf",
		Hash:       "deadbeef",
		ChunkCount: 12,
		PageCount:  4,
	}
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.GetByKey(ctx, "handbook.pdf")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if got.Hash != "deadbeef" || got.ChunkCount != 12 || got.PageCount != 4 {
		t.Errorf("GetByKey() = %+v", got)
	}
	if got.IngestedAt.IsZero() {
		t.Error("IngestedAt not populated")
	}
}

func TestDocumentRepo_Upsert_Replaces(t *testing.T) {
	repo := NewDocumentRepo(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, &DocumentRecord{SourceKey: "a.pdf", Hash: "v1", ChunkCount: 3, PageCount: 1}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	if err := repo.Upsert(ctx, &DocumentRecord{SourceKey: "a.pdf", Hash: "v2", ChunkCount: 5, PageCount: 2}); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := repo.GetByKey(ctx, "a.pdf")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if got.Hash != "v2" || got.ChunkCount != 5 || got.PageCount != 2 {
		t.Errorf("GetByKey() after replace = %+v", got)
	}

	records, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("ListAll() = %d rows, want 1 (upsert must not duplicate)", len(records))
	}
}

func TestDocumentRepo_ListAll_Ordered(t *testing.T) {
	repo := NewDocumentRepo(setupTestDB(t))
	ctx := context.Background()

	for _, key := range []string{"c.pdf", "a.pdf", "b.pdf"} {
		if err := repo.Upsert(ctx, &DocumentRecord{SourceKey: key, Hash: "h", ChunkCount: 1, PageCount: 1}); err != nil {
			t.Fatalf("Upsert(%s) error = %v", key, err)
		}
	}

	records, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ListAll() = %d rows, want 3", len(records))
	}
	for i, want := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if records[i].SourceKey != want {
			t.Errorf("records[%d] = %s, want %s", i, records[i].SourceKey, want)
		}
	}
}

func TestDocumentRepo_ListAll_Empty(t *testing.T) {
	repo := NewDocumentRepo(setupTestDB(t))

	records, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("ListAll() = %d rows, want 0", len(records))
	}
}
