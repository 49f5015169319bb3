package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docqa/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// DocumentStore is the ingestion ledger.
type DocumentStore interface {
	// GetByKey returns the ledger row for a source key, or ErrNotFound.
	GetByKey(ctx context.Context, sourceKey string) (*DocumentRecord, error)

	// Upsert inserts or replaces the ledger row for a source key.
	Upsert(ctx context.Context, record *DocumentRecord) error

	// ListAll returns all ledger rows ordered by source key.
	ListAll(ctx context.Context) ([]DocumentRecord, error)
}

// DocumentRepo implements DocumentStore on SQLite.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByKey returns the ledger row for a source key.
func (r *DocumentRepo) GetByKey(ctx context.Context, sourceKey string) (*DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT source_key, hash, chunk_count, page_count, ingested_at
		 FROM documents WHERE source_key = ?`, sourceKey)

	var rec DocumentRecord
	err := row.Scan(&rec.SourceKey, &rec.Hash, &rec.ChunkCount, &rec.PageCount, &rec.IngestedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", sourceKey, err)
	}
	return &rec, nil
}

// Upsert inserts or replaces the ledger row for a source key.
func (r *DocumentRepo) Upsert(ctx context.Context, record *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (source_key, hash, chunk_count, page_count, ingested_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(source_key) DO UPDATE SET
			hash = excluded.hash,
			chunk_count = excluded.chunk_count,
			page_count = excluded.page_count,
			ingested_at = CURRENT_TIMESTAMP`,
		record.SourceKey, record.Hash, record.ChunkCount, record.PageCount)
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", record.SourceKey, err)
	}
	return nil
}

// ListAll returns all ledger rows ordered by source key.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT source_key, hash, chunk_count, page_count, ingested_at
		 FROM documents ORDER BY source_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		if err := rows.Scan(&rec.SourceKey, &rec.Hash, &rec.ChunkCount, &rec.PageCount, &rec.IngestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return records, nil
}
