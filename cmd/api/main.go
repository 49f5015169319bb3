package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docqa/internal/config"
	"docqa/internal/extractor"
	"docqa/internal/http"
	"docqa/internal/ingest"
	"docqa/internal/llm"
	"docqa/internal/objstore"
	"docqa/internal/rag"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	docRepo := storage.NewDocumentRepo(db)

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	slog.Info("Vector store client ready", "url", cfg.QdrantURL, "collection", cfg.QdrantCollection)

	objectStore, err := objstore.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to create MinIO client: %v", err)
	}
	slog.Info("Object store client ready", "endpoint", cfg.MinioEndpoint)

	// One provider client per process, shared by both paths.
	llmClient := llm.NewClient(cfg.OpenAIAPIKey, "", cfg.EmbeddingModel, cfg.ChatModel, cfg.VectorSize)

	pipeline := ingest.NewPipeline(
		objectStore,
		extractor.NewPDFExtractor(),
		ingest.NewChunker(cfg.ChunkSize),
		llmClient,
		vectorStore,
		cfg.QdrantCollection,
		docRepo,
		ingest.DefaultBatchSize,
	)

	ragEngine := rag.NewEngine(
		llmClient,
		llmClient,
		vectorStore,
		cfg.QdrantCollection,
		cfg.TopK,
	)
	slog.Info("RAG engine initialized", "embedding_model", cfg.EmbeddingModel, "chat_model", cfg.ChatModel, "top_k", cfg.TopK)

	router := http.NewRouter(&http.Deps{
		RAGEngine:      ragEngine,
		Pipeline:       pipeline,
		DocRepo:        docRepo,
		VectorStore:    vectorStore,
		ObjectStore:    objectStore,
		CollectionName: cfg.QdrantCollection,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
