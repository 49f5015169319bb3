package ingest

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"

	"docqa/internal/contextutil"
	"docqa/internal/extractor"
	"docqa/internal/llm"
	"docqa/internal/objstore"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

const (
	// DefaultBatchSize bounds the number of fragments per embedding and
	// upsert request.
	DefaultBatchSize = 50
	// metadataTextLimit is the maximum fragment text length stored in
	// vector metadata. Truncation is lossy and applies only to the stored
	// copy; the embedded vector reflects the full fragment.
	metadataTextLimit = 1000
)

// Extractor turns raw document bytes into ordered per-page text.
type Extractor interface {
	Extract(data []byte) ([]extractor.Page, error)
}

// Pipeline orchestrates document ingestion: fetch, extract, chunk, embed
// in batches, and upsert into the vector store.
type Pipeline struct {
	objects     objstore.ObjectStore
	extractor   Extractor
	chunker     *Chunker
	embedder    llm.Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	docRepo     storage.DocumentStore
	batchSize   int
	logger      *slog.Logger
}

// NewPipeline creates an ingestion pipeline. batchSize <= 0 selects the
// default.
func NewPipeline(
	objects objstore.ObjectStore,
	ext Extractor,
	chunker *Chunker,
	embedder llm.Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	docRepo storage.DocumentStore,
	batchSize int,
) *Pipeline {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pipeline{
		objects:     objects,
		extractor:   ext,
		chunker:     chunker,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		docRepo:     docRepo,
		batchSize:   batchSize,
		logger:      slog.Default(),
	}
}

// IngestDocument runs the full ingestion path for one document. Any
// failure past validation is fatal for that document; there is no partial
// retry. An unchanged document (same content hash as the ledger row) is
// skipped without touching the vector store.
func (p *Pipeline) IngestDocument(ctx context.Context, bucket, key string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	data, err := p.objects.Get(ctx, bucket, key)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch document: %w", err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(data))

	existing, err := p.docRepo.GetByKey(ctx, key)
	if err != nil && err != storage.ErrNotFound {
		return Result{}, fmt.Errorf("failed to check ingestion ledger: %w", err)
	}
	if existing != nil && existing.Hash == hash {
		logger.InfoContext(ctx, "skipping unchanged document", "key", key, "hash", hash)
		return Result{File: key, Chunks: 0, Skipped: true}, nil
	}

	pages, err := p.extractor.Extract(data)
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract document %s: %w", key, err)
	}

	fragments := p.chunker.Chunk(pages)
	logger.InfoContext(ctx, "document chunked", "key", key, "pages", len(pages), "fragments", len(fragments))

	total, err := p.embedAndUpsert(ctx, fragments, key)
	if err != nil {
		return Result{}, err
	}

	if err := p.docRepo.Upsert(ctx, &storage.DocumentRecord{
		SourceKey:  key,
		Hash:       hash,
		ChunkCount: total,
		PageCount:  len(pages),
	}); err != nil {
		return Result{}, fmt.Errorf("failed to record ingestion: %w", err)
	}

	logger.InfoContext(ctx, "ingestion complete", "key", key, "vectors", total)
	return Result{File: key, Chunks: total}, nil
}

// embedAndUpsert embeds fragments in order-preserving batches and upserts
// each batch. Fragment IDs use the global sequence index, so batch
// boundaries are invisible to the stored records. An empty fragment list
// writes nothing.
func (p *Pipeline) embedAndUpsert(ctx context.Context, fragments []Fragment, sourceKey string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	total := 0
	for start := 0; start < len(fragments); start += p.batchSize {
		end := start + p.batchSize
		if end > len(fragments) {
			end = len(fragments)
		}
		batch := fragments[start:end]

		texts := make([]string, len(batch))
		for i, frag := range batch {
			texts[i] = frag.Text
		}

		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("failed to embed batch starting at %d: %w", start, err)
		}
		if len(vectors) != len(batch) {
			return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vectors))
		}

		records := make([]vectorstore.Record, len(batch))
		for i, frag := range batch {
			records[i] = vectorstore.Record{
				ID:     fmt.Sprintf("%s_%d", sourceKey, start+i),
				Values: vectors[i],
				Meta: map[string]any{
					"source": sourceKey,
					"pages":  pagesMeta(frag.Pages),
					"text":   truncate(frag.Text, metadataTextLimit),
				},
			}
		}

		count, err := p.vectorStore.Upsert(ctx, p.collection, records)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert batch starting at %d: %w", start, err)
		}
		total += count

		logger.InfoContext(ctx, "upserted batch", "key", sourceKey, "from", start, "to", end, "total", total)
	}

	return total, nil
}

// pagesMeta converts page indices to the generic list shape the vector
// store payload expects.
func pagesMeta(pages []int) []any {
	out := make([]any, len(pages))
	for i, p := range pages {
		out[i] = p
	}
	return out
}

// truncate shortens s to at most limit characters.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
