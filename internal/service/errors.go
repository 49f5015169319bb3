package service

import (
	"errors"
	"fmt"
)

// Sentinel errors classify failures across the ingestion and query paths
// so HTTP handlers can map them to response codes without inspecting
// messages.

var (
	// ErrInvalidInput is returned when request validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExtraction is returned when a document cannot be read or parsed.
	// It is fatal for that document's ingestion.
	ErrExtraction = errors.New("extraction error")
	// ErrEmbeddingProvider is returned when the embedding or completion
	// provider call fails. It is fatal to the current batch or run.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrVectorStore is returned when a vector store persist or query fails.
	ErrVectorStore = errors.New("vector store error")
)

// ValidationError carries a field name alongside the validation message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
