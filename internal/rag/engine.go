package rag

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
	"docqa/internal/service"
	"docqa/internal/vectorstore"
)

// FallbackAnswer is returned when retrieval yields no eligible matches.
// The language model is not invoked in that case.
const FallbackAnswer = "I could not find relevant information in the documents. Please upload a PDF first."

const systemPrompt = `You are an expert AI assistant. Answer questions based ONLY on the provided context.
If the context doesn't contain enough information, say so clearly.
Always cite the source and page numbers when referencing information.
Be concise, accurate, and helpful.`

// contextDelimiter separates retrieved fragments in the grounding prompt.
const contextDelimiter = "\n\n---\n\n"

// defaultTopK is the retrieval result count when the request does not set one.
const defaultTopK = 5

// Engine answers questions using retrieval-augmented generation.
type Engine interface {
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

type engine struct {
	embedder    llm.Embedder
	completer   llm.Completer
	vectorStore vectorstore.VectorStore
	collection  string
	topK        int
}

// NewEngine creates a RAG engine. topK <= 0 selects the default result count.
func NewEngine(
	embedder llm.Embedder,
	completer llm.Completer,
	vectorStore vectorstore.VectorStore,
	collection string,
	topK int,
) Engine {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &engine{
		embedder:    embedder,
		completer:   completer,
		vectorStore: vectorStore,
		collection:  collection,
		topK:        topK,
	}
}

// Ask embeds the question, retrieves the most similar fragments, and
// synthesizes a cited answer. An empty question is a validation error; no
// eligible matches short-circuits to the fallback answer without invoking
// the model.
func (e *engine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResponse{}, &service.ValidationError{Field: "question", Message: "question is required"}
	}

	logger.InfoContext(ctx, "question received", "question", question)

	vectors, err := e.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(vectors) == 0 {
		return AskResponse{}, fmt.Errorf("%w: no embedding returned for question", service.ErrEmbeddingProvider)
	}

	k := req.K
	if k <= 0 {
		k = e.topK
	}

	matches, err := e.vectorStore.Query(ctx, e.collection, vectors[0], k)
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to retrieve context: %w", err)
	}

	logger.InfoContext(ctx, "context retrieved", "matches", len(matches), "k", k)

	if len(matches) == 0 {
		return AskResponse{
			Answer:  FallbackAnswer,
			Sources: []vectorstore.Match{},
		}, nil
	}

	answer, err := e.completer.Complete(ctx, systemPrompt, buildUserPrompt(question, matches))
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to synthesize answer: %w", err)
	}

	logger.InfoContext(ctx, "answer generated", "answer_length", len(answer), "sources", len(matches))

	return AskResponse{
		Answer:  answer,
		Sources: matches,
		Model:   e.completer.Model(),
	}, nil
}

// buildUserPrompt assembles the grounding prompt: each match's citation
// header and text in relevance order, joined by a fixed delimiter, followed
// by the question.
func buildUserPrompt(question string, matches []vectorstore.Match) string {
	sections := make([]string, len(matches))
	for i, m := range matches {
		sections[i] = fmt.Sprintf("[Source: %s, Pages: %v]\n%s", m.Source, m.Pages, m.Text)
	}

	return fmt.Sprintf("Context from the document:\n%s\n\nQuestion: %s\n\nAnswer based on the context above:",
		strings.Join(sections, contextDelimiter), question)
}
