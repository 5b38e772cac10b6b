package rag

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmptyQuery        = errors.New("query input is empty")
	ErrNoRelevantContext = errors.New("no relevant information found")
)

// Chunk is one window of a source document. ChunkIndex counts from 0 in
// order of appearance and is unique within a Source.
type Chunk struct {
	Text       string
	Source     string
	ChunkIndex int
}

// StoredChunk pairs a chunk with its embedding for persistence.
type StoredChunk struct {
	Chunk
	Vector []float32
}

// RetrievedChunk is a chunk returned by a nearest-neighbor search.
type RetrievedChunk struct {
	Chunk
	Score float32
}

// GroundedAnswer is the full query result. The HTTP surface forwards only
// Response, Context and ResponseTime; Sources and TokenUsage stay internal.
type GroundedAnswer struct {
	Response     string
	Context      string
	Sources      []string
	TokenUsage   int
	Unparseable  bool
	ResponseTime time.Duration
}

type vectorStore interface {
	UpsertBatch(ctx context.Context, batch []StoredChunk) error
	Query(ctx context.Context, vector []float32, k int) ([]RetrievedChunk, error)
	Init(ctx context.Context, vectorSize int) error
	Close() error
}
