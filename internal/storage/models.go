package storage

import "time"

// DocumentRecord is one row of the ingestion ledger. It records what was
// ingested for a source key so unchanged documents can be skipped on
// re-ingest. The fragments themselves live only in the vector store.
type DocumentRecord struct {
	SourceKey  string    // object storage key of the document
	Hash       string    // SHA256 hex string of the raw document bytes
	ChunkCount int       // fragments produced by the last ingestion
	PageCount  int       // pages seen in the last ingestion
	IngestedAt time.Time
}
