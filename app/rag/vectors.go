package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

func NewQdrantStore(host string, port int, collection string) (vectorStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("connect vector store: %w", err)
	}
	return &QdrantStore{
		client:     client,
		collection: collection,
	}, nil
}

func (s *QdrantStore) Init(ctx context.Context, vectorSize int) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", s.collection, err)
	}
	if exists {
		return nil
	}
	if err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(vectorSize),
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	}); err != nil {
		return fmt.Errorf("create collection %s: %w", s.collection, err)
	}
	return nil
}

func (s *QdrantStore) Close() error {
	return s.client.Close()
}

func (s *QdrantStore) UpsertBatch(ctx context.Context, batch []StoredChunk) error {
	pts := make([]*qdrant.PointStruct, len(batch))

	for i, c := range batch {
		pts[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(uuid.New().String()),
			Vectors: qdrant.NewVectors(c.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":        c.Text,
				"source":      c.Source,
				"chunk_index": c.ChunkIndex,
			}),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         pts,
	})

	return err
}

func (s *QdrantStore) Query(ctx context.Context, vector []float32, k int) ([]RetrievedChunk, error) {
	limit := uint64(k)
	resp, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Limit:          &limit,
		Query:          qdrant.NewQuery(vector...),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	out := make([]RetrievedChunk, 0, len(resp))
	for _, r := range resp {
		out = append(out, RetrievedChunk{
			Chunk: Chunk{
				Text:       r.Payload["text"].GetStringValue(),
				Source:     r.Payload["source"].GetStringValue(),
				ChunkIndex: int(r.Payload["chunk_index"].GetIntegerValue()),
			},
			Score: r.Score,
		})
	}

	return out, nil
}
