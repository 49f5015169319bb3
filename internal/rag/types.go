package rag

import "docqa/internal/vectorstore"

// AskRequest is a query against the ingested documents.
type AskRequest struct {
	// Question is the user's question. Leading and trailing whitespace is
	// ignored; an empty question is a validation error.
	Question string `json:"question"`
	// K optionally overrides the retrieval result count. Zero selects the
	// configured default.
	K int `json:"k,omitempty"`
}

// AskResponse is the answer to a query together with the retrieval matches
// that grounded it, ordered by descending relevance.
type AskResponse struct {
	Answer  string              `json:"answer"`
	Sources []vectorstore.Match `json:"sources"`
	Model   string              `json:"model,omitempty"`
}
