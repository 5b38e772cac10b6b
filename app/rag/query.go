package rag

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"GoRagServer/app/storage"
)

// Answer runs the query pipeline: expansion, retrieval, context assembly,
// grounded synthesis. The pipeline is linear; any stage failure fails the
// whole query, with no retries.
func (s *Service) Answer(ctx context.Context, question string) (*GroundedAnswer, error) {
	start := time.Now()

	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuery
	}

	queries, err := s.expandQuery(ctx, question)
	if err != nil {
		s.recordQuery(ctx, question, false, start)
		return nil, err
	}

	retrieved, err := s.retrieve(ctx, queries)
	if err != nil {
		s.recordQuery(ctx, question, false, start)
		return nil, err
	}
	if len(retrieved) == 0 {
		log.Printf("⚠️ No relevant documents retrieved for %q", question)
		s.recordQuery(ctx, question, false, start)
		return nil, ErrNoRelevantContext
	}

	contextText, sources := assembleContext(retrieved)

	answer, err := s.synthesize(ctx, question, contextText)
	if err != nil {
		s.recordQuery(ctx, question, false, start)
		return nil, err
	}

	s.recordQuery(ctx, question, true, start)

	return &GroundedAnswer{
		Response:     answer.Text,
		Context:      contextText,
		Sources:      sources,
		TokenUsage:   answer.TokenUsage,
		Unparseable:  answer.Unparseable,
		ResponseTime: time.Since(start),
	}, nil
}

// retrieve fans the expanded queries out against the vector store and merges
// the ranked results in expansion order, keeping the first occurrence of
// each (source, chunk_index) pair. Per-query ranking is preserved, never
// re-sorted across queries.
func (s *Service) retrieve(ctx context.Context, queries []string) ([]RetrievedChunk, error) {
	results := make([][]RetrievedChunk, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			vec, err := s.model.EmbedText(ctx, q)
			if err != nil {
				errs[i] = fmt.Errorf("embed query %q: %w", q, err)
				return
			}
			results[i], errs[i] = s.vectors.Query(ctx, vec, s.topK)
		}(i, q)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	type chunkKey struct {
		source string
		index  int
	}
	seen := make(map[chunkKey]bool)
	var merged []RetrievedChunk
	for _, ranked := range results {
		for _, rc := range ranked {
			k := chunkKey{rc.Source, rc.ChunkIndex}
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, rc)
		}
	}

	return merged, nil
}

func (s *Service) recordQuery(ctx context.Context, question string, success bool, start time.Time) {
	err := s.history.SaveQuery(ctx, storage.QueryRecord{
		Question:   question,
		Success:    success,
		DurationMS: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now(),
	})
	if err != nil {
		log.Printf("⚠️ Error recording query: %v", err)
	}
}
