package vectorstore

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"docqa/internal/contextutil"
	"docqa/internal/service"
)

// scorePrecision is the number of decimal places kept on similarity
// scores in query results.
const scorePrecision = 4

// pointNamespace is the UUIDv5 namespace for deriving point IDs from
// record IDs. Qdrant only accepts UUID or integer point IDs, so the
// deterministic record ID is hashed into a UUID; the mapping is stable,
// which preserves overwrite-by-ID semantics across ingestion runs.
var pointNamespace = uuid.MustParse("8e7a2f4c-31d6-4b0a-9c55-0f6e3d2a1b90")

// QdrantStore implements VectorStore using Qdrant.
type QdrantStore struct {
	client *qdrant.Client
}

// NewQdrantStore creates a new Qdrant vector store client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) is derived from the HTTP port.
func NewQdrantStore(urlStr string) (*QdrantStore, error) {
	host, port, err := parseEndpoint(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{client: client}, nil
}

// parseEndpoint extracts the gRPC host and port from an HTTP-style URL.
func parseEndpoint(urlStr string) (string, int, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	// gRPC port is conventionally the HTTP port + 1.
	port := 6334
	if parsedURL.Port() != "" {
		if httpPort, err := strconv.Atoi(parsedURL.Port()); err == nil {
			port = httpPort + 1
		}
	}

	return host, port, nil
}

// Upsert writes records to the collection, overwriting records whose IDs
// collide. Returns the number of records written.
func (s *QdrantStore) Upsert(ctx context.Context, collection string, records []Record) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(records) == 0 {
		return 0, nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, rec := range records {
		point := &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(rec.ID)),
			Vectors: qdrant.NewVectors(rec.Values...),
		}
		if len(rec.Meta) > 0 {
			point.Payload = qdrant.NewValueMap(rec.Meta)
		}
		points = append(points, point)
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert records", "collection", collection, "count", len(records), "error", err)
		return 0, fmt.Errorf("%w: upsert: %v", service.ErrVectorStore, err)
	}

	logger.InfoContext(ctx, "upserted records", "collection", collection, "count", len(records))
	return len(records), nil
}

// Query searches the collection for the k nearest records and projects
// them into Matches. Records without text metadata are dropped rather than
// reported as errors.
func (s *QdrantStore) Query(ctx context.Context, collection string, vector []float32, k int) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	limit := uint64(k)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to query records", "collection", collection, "k", k, "error", err)
		return nil, fmt.Errorf("%w: query: %v", service.ErrVectorStore, err)
	}

	matches := make([]Match, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		meta := map[string]any{}
		if point.Payload != nil {
			meta = convertPayloadToMap(point.Payload)
		}

		text, ok := meta["text"].(string)
		if !ok || text == "" {
			continue
		}

		source, _ := meta["source"].(string)
		matches = append(matches, Match{
			Text:   text,
			Score:  roundScore(point.Score),
			Source: source,
			Pages:  pagesFromMeta(meta["pages"]),
		})
	}

	logger.InfoContext(ctx, "query completed", "collection", collection, "k", k, "matches", len(matches))
	return matches, nil
}

// CollectionExists reports whether the collection exists. Used by health
// checks; the collection itself is provisioned externally.
func (s *QdrantStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection existence: %w", err)
	}
	return exists, nil
}

// PointID derives the stable Qdrant point UUID for a record ID.
func PointID(recordID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(recordID)).String()
}

// roundScore rounds a similarity score to the display precision.
func roundScore(score float32) float32 {
	shift := math.Pow10(scorePrecision)
	return float32(math.Round(float64(score)*shift) / shift)
}

// pagesFromMeta converts a payload pages list back to page indices.
func pagesFromMeta(v any) []int {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	pages := make([]int, 0, len(list))
	for _, item := range list {
		switch n := item.(type) {
		case int64:
			pages = append(pages, int(n))
		case float64:
			pages = append(pages, int(n))
		case int:
			pages = append(pages, n)
		}
	}
	return pages
}

// convertPayloadToMap converts Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		if v == nil {
			continue
		}
		result[k] = convertValue(v)
	}
	return result
}

// convertValue converts a Qdrant Value to a Go any type.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
