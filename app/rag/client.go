package rag

import (
	"context"
	"fmt"

	"GoRagServer/app/configs"
	"GoRagServer/app/models"
	"GoRagServer/app/storage"
)

// Service owns both pipelines: ingestion of uploaded documents and grounded
// question answering over the ingested chunks.
type Service struct {
	vectors    vectorStore
	model      models.Interface
	history    storage.Interface
	splitter   *Splitter
	tempFolder string
	topK       int
}

func NewService(ctx context.Context, cfg *configs.Config, model models.Interface, history storage.Interface) (*Service, error) {
	vectors, err := NewQdrantStore(cfg.Qdrant.Host, cfg.Qdrant.Port, cfg.Qdrant.Collection)
	if err != nil {
		return nil, err
	}
	if err = vectors.Init(ctx, cfg.Qdrant.VectorSize); err != nil {
		return nil, fmt.Errorf("init vector store: %w", err)
	}

	return &Service{
		vectors:    vectors,
		model:      model,
		history:    history,
		splitter:   NewSplitter(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		tempFolder: cfg.Ingest.TempFolder,
		topK:       cfg.Qdrant.TopK,
	}, nil
}

func (s *Service) Close() error {
	return s.vectors.Close()
}
