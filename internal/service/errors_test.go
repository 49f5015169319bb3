package service

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError_UnwrapsToInvalidInput(t *testing.T) {
	var err error = &ValidationError{Field: "question", Message: "question is required"}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}
	if !strings.Contains(err.Error(), "question") {
		t.Errorf("Error() = %q, want field name included", err.Error())
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrInvalidInput, ErrExtraction, ErrEmbeddingProvider, ErrVectorStore}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches %v", a, b)
			}
		}
	}
}
