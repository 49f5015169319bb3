package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/rag"
	"docqa/internal/service"
	"docqa/internal/vectorstore"
)

// AskHandler handles HTTP requests for document questions.
type AskHandler struct {
	ragEngine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(ragEngine rag.Engine) *AskHandler {
	return &AskHandler{ragEngine: ragEngine}
}

// AskRequest is the HTTP request payload for queries.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the HTTP response payload for queries.
type AskResponse struct {
	Answer   string              `json:"answer"`
	Question string              `json:"question"`
	Sources  []vectorstore.Match `json:"sources"`
	Model    string              `json:"model,omitempty"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP answers a question from ingested documents.
// Responds 400 when the question is missing or empty, 200 with a fallback
// answer when nothing relevant is indexed, and a generic 500 for anything
// else; internal detail never reaches the response body.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	ragResp, err := h.ragEngine.Ask(ctx, rag.AskRequest{Question: question})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Question is required")
			return
		}
		logger.ErrorContext(ctx, "query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:   ragResp.Answer,
		Question: question,
		Sources:  ragResp.Sources,
		Model:    ragResp.Model,
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}
