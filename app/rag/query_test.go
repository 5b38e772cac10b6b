package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAnswerEmptyQuery(t *testing.T) {
	model := &fakeModel{}
	svc, _ := newTestService(t, model, &fakeVectorStore{})

	for _, question := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Answer(context.Background(), question); !errors.Is(err, ErrEmptyQuery) {
			t.Fatalf("question %q: expected ErrEmptyQuery, got %v", question, err)
		}
	}
	if model.expandCalls != 0 {
		t.Fatalf("expansion must not run for empty questions, ran %d times", model.expandCalls)
	}
}

func TestAnswerNoRelevantContext(t *testing.T) {
	model := &fakeModel{expandText: "q1\nq2\nq3\nq4\nq5"}
	vectors := &fakeVectorStore{
		queryFn: func([]float32, int) ([]RetrievedChunk, error) { return nil, nil },
	}
	svc, history := newTestService(t, model, vectors)

	_, err := svc.Answer(context.Background(), "anything?")
	if !errors.Is(err, ErrNoRelevantContext) {
		t.Fatalf("expected ErrNoRelevantContext, got %v", err)
	}
	if model.answerCalls != 0 {
		t.Fatal("synthesis must not run when retrieval is empty")
	}
	if len(history.queries) != 1 || history.queries[0].Success {
		t.Fatalf("expected one failed query record, got %+v", history.queries)
	}
}

func TestAnswerDeduplicatesAcrossQueries(t *testing.T) {
	shared := RetrievedChunk{Chunk: Chunk{Text: "the sky is blue", Source: "a.md", ChunkIndex: 3}, Score: 0.9}
	model := &fakeModel{expandText: "q1\nq2", answerText: "Blue."}
	vectors := &fakeVectorStore{
		queryFn: func([]float32, int) ([]RetrievedChunk, error) {
			return []RetrievedChunk{shared}, nil
		},
	}
	svc, _ := newTestService(t, model, vectors)

	out, err := svc.Answer(context.Background(), "What color is the sky?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if len(out.Sources) != 1 {
		t.Fatalf("shared chunk must appear once, got sources %v", out.Sources)
	}
	if out.Context != "the sky is blue" {
		t.Fatalf("unexpected context: %q", out.Context)
	}
}

func TestAnswerMergesInExpansionOrder(t *testing.T) {
	chunkA := RetrievedChunk{Chunk: Chunk{Text: "alpha", Source: "a.md", ChunkIndex: 0}}
	chunkB := RetrievedChunk{Chunk: Chunk{Text: "beta", Source: "b.md", ChunkIndex: 0}}

	// Embeddings encode the phrasing length, so the store can tell the two
	// expanded queries apart regardless of goroutine scheduling.
	model := &fakeModel{expandText: "short\na much longer phrasing", answerText: "ok"}
	vectors := &fakeVectorStore{
		queryFn: func(vec []float32, _ int) ([]RetrievedChunk, error) {
			if vec[0] == float32(len("short")) {
				return []RetrievedChunk{chunkA}, nil
			}
			return []RetrievedChunk{chunkB}, nil
		},
	}
	svc, _ := newTestService(t, model, vectors)

	out, err := svc.Answer(context.Background(), "which?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.Context != "alpha\nbeta" {
		t.Fatalf("merge must keep expansion order, got %q", out.Context)
	}
	if vectors.queries != 2 {
		t.Fatalf("expected one search per phrasing, got %d", vectors.queries)
	}
}

func TestAnswerExpansionFailure(t *testing.T) {
	wantErr := errors.New("model down")
	model := &fakeModel{expandErr: wantErr}
	svc, history := newTestService(t, model, &fakeVectorStore{})

	_, err := svc.Answer(context.Background(), "anything?")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected expansion error to propagate, got %v", err)
	}
	if len(history.queries) != 1 || history.queries[0].Success {
		t.Fatal("failed expansion must be recorded as a failed query")
	}
}

func TestAnswerUnparseableResponse(t *testing.T) {
	model := &fakeModel{expandText: "q1", answerText: "   "}
	vectors := &fakeVectorStore{
		queryFn: func([]float32, int) ([]RetrievedChunk, error) {
			return []RetrievedChunk{{Chunk: Chunk{Text: "ctx", Source: "a.md"}}}, nil
		},
	}
	svc, _ := newTestService(t, model, vectors)

	out, err := svc.Answer(context.Background(), "anything?")
	if err != nil {
		t.Fatalf("unparseable output must not fail the query: %v", err)
	}
	if !out.Unparseable || out.Response != UnparseableAnswer {
		t.Fatalf("expected sentinel answer, got %+v", out)
	}
}

func TestAnswerSuccess(t *testing.T) {
	model := &fakeModel{expandText: "q1\nq2\nq3\nq4\nq5", answerText: "The sky is blue."}
	vectors := &fakeVectorStore{
		queryFn: func([]float32, int) ([]RetrievedChunk, error) {
			return []RetrievedChunk{{Chunk: Chunk{Text: "the sky is blue", Source: "1700000000_notes.md", ChunkIndex: 0}, Score: 0.92}}, nil
		},
	}
	svc, history := newTestService(t, model, vectors)

	out, err := svc.Answer(context.Background(), "What color is the sky?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if out.Response != "The sky is blue." {
		t.Fatalf("unexpected response: %q", out.Response)
	}
	if !strings.Contains(out.Context, "sky is blue") {
		t.Fatalf("context must carry the retrieved text, got %q", out.Context)
	}
	if out.Sources[0] != "Source: 1700000000_notes.md (Chunk 0)" {
		t.Fatalf("unexpected citation: %q", out.Sources[0])
	}
	if out.TokenUsage != 42 {
		t.Fatalf("token usage not forwarded: %d", out.TokenUsage)
	}
	if out.ResponseTime <= 0 {
		t.Fatal("response time must be measured")
	}
	if len(history.queries) != 1 || !history.queries[0].Success {
		t.Fatalf("expected one successful query record, got %+v", history.queries)
	}
}

func TestParseQueryLines(t *testing.T) {
	text := "1. What color is the sky?\n2) Which color does the sky have?\n\n- Sky color?\nIs the sky blue?\nWhat hue is the sky?\nA sixth phrasing"
	queries := parseQueryLines(text, 5)
	if len(queries) != 5 {
		t.Fatalf("expected 5 phrasings, got %d: %v", len(queries), queries)
	}
	if queries[0] != "What color is the sky?" {
		t.Fatalf("numbering not stripped: %q", queries[0])
	}
	if queries[2] != "Sky color?" {
		t.Fatalf("bullet not stripped: %q", queries[2])
	}
}

func TestParseQueryLinesKeepsLeadingDigits(t *testing.T) {
	text := "2020 Olympics host city?\n100 meter sprint record?\n-5 degrees in Fahrenheit?"
	queries := parseQueryLines(text, 5)
	want := []string{
		"2020 Olympics host city?",
		"100 meter sprint record?",
		"-5 degrees in Fahrenheit?",
	}
	if len(queries) != len(want) {
		t.Fatalf("expected %d phrasings, got %d: %v", len(want), len(queries), queries)
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Fatalf("phrasing %d mangled: got %q, want %q", i, queries[i], want[i])
		}
	}
}
