package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks docqa/internal/llm Embedder,Completer

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"docqa/internal/service"
)

const (
	// completionMaxTokens bounds the synthesized answer length.
	completionMaxTokens = 800
	// completionTemperature keeps generation close to the supplied context.
	completionTemperature = 0.3
)

// Embedder converts texts into fixed-dimension vectors, one per input text
// and in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer produces a chat completion from a system instruction and a
// user prompt.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

// Client wraps the OpenAI API for embeddings and chat completions.
// A single Client is constructed at startup and shared across requests;
// it carries no per-request state.
type Client struct {
	api          *openai.Client
	embedModel   string
	chatModel    string
	expectedSize int
}

// NewClient creates an OpenAI-backed client. baseURL overrides the API
// endpoint when non-empty (used by tests and proxies). expectedSize is the
// embedding dimension every returned vector is validated against; it must
// match the vector store's configured dimension.
func NewClient(apiKey, baseURL, embedModel, chatModel string, expectedSize int) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:          openai.NewClientWithConfig(cfg),
		embedModel:   embedModel,
		chatModel:    chatModel,
		expectedSize: expectedSize,
	}
}

// EmbedTexts generates embeddings for the given texts via one provider
// call. The response is validated for count, order alignment, and vector
// size before being returned.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrEmbeddingProvider, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", service.ErrEmbeddingProvider, len(texts), len(resp.Data))
	}

	result := make([][]float32, len(resp.Data))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(result) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", service.ErrEmbeddingProvider, data.Index)
		}
		if c.expectedSize > 0 && len(data.Embedding) != c.expectedSize {
			return nil, fmt.Errorf("%w: embedding %d has size %d, expected %d", service.ErrEmbeddingProvider, data.Index, len(data.Embedding), c.expectedSize)
		}
		vec := make([]float32, len(data.Embedding))
		copy(vec, data.Embedding)
		result[data.Index] = vec
	}
	for i, vec := range result {
		if vec == nil {
			return nil, fmt.Errorf("%w: no embedding returned for input %d", service.ErrEmbeddingProvider, i)
		}
	}

	return result, nil
}

// Complete sends a bounded, low-temperature chat completion request and
// returns the model output verbatim.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrEmbeddingProvider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", service.ErrEmbeddingProvider)
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured chat model identifier.
func (c *Client) Model() string {
	return c.chatModel
}
