package handlers

import (
	"context"
	"net/http"
	"time"

	"docqa/internal/contextutil"
)

// CollectionChecker reports whether the vector index collection exists.
type CollectionChecker interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// Pinger verifies connectivity to a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the health of the service's external dependencies.
type HealthHandler struct {
	vectorStore    CollectionChecker
	objectStore    Pinger
	collectionName string
	checkTimeout   time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(vectorStore CollectionChecker, objectStore Pinger, collectionName string) *HealthHandler {
	return &HealthHandler{
		vectorStore:    vectorStore,
		objectStore:    objectStore,
		collectionName: collectionName,
		checkTimeout:   5 * time.Second,
	}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	// Status is "healthy", "degraded", or "unhealthy".
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Issues    []string          `json:"issues,omitempty"`
}

// ServeHTTP runs dependency checks with a bounded timeout.
// Returns 200 when healthy and 503 when degraded or unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.checkTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if exists, err := h.vectorStore.CollectionExists(checkCtx, h.collectionName); err != nil {
		checks["vector_store"] = "unreachable"
		issues = append(issues, "vector store unreachable")
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
	} else if !exists {
		checks["vector_store"] = "missing collection"
		issues = append(issues, "vector index collection does not exist")
	} else {
		checks["vector_store"] = "ok"
	}

	if err := h.objectStore.Ping(checkCtx); err != nil {
		checks["object_store"] = "unreachable"
		issues = append(issues, "object store unreachable")
		logger.WarnContext(ctx, "object store health check failed", "error", err)
	} else {
		checks["object_store"] = "ok"
	}

	status := "healthy"
	statusCode := http.StatusOK
	switch len(issues) {
	case 0:
	case 1:
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	default:
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}
