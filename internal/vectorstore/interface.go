package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docqa/internal/vectorstore VectorStore

import "context"

// Record is a vector with its metadata, keyed by a deterministic ID.
// Upserting the same ID overwrites the stored record.
type Record struct {
	ID     string
	Values []float32
	Meta   map[string]any
}

// Match is a read-only projection of a stored record returned by Query,
// with a similarity score rounded for display.
type Match struct {
	Text   string  `json:"text"`
	Score  float32 `json:"score"`
	Source string  `json:"source"`
	Pages  []int   `json:"pages"`
}

// VectorStore persists fragment vectors and searches them by similarity.
type VectorStore interface {
	// Upsert writes records idempotently by ID and returns the number
	// of records written.
	Upsert(ctx context.Context, collection string, records []Record) (int, error)

	// Query returns up to k matches ordered by descending similarity.
	// Matches lacking text metadata are filtered out, so fewer than k
	// matches may be returned.
	Query(ctx context.Context, collection string, vector []float32, k int) ([]Match, error)
}
