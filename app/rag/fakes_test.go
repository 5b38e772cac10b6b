package rag

import (
	"context"
	"sync"
	"testing"

	"GoRagServer/app/models"
	"GoRagServer/app/storage"
)

type fakeModel struct {
	mu          sync.Mutex
	expandText  string
	answerText  string
	expandErr   error
	answerErr   error
	embedErr    error
	embedFn     func(input string) []float32
	expandCalls int
	answerCalls int
	embedCalls  int
}

func (m *fakeModel) Generate(_ context.Context, messages []models.Message, _ float64) (*models.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Expansion prompts carry a system message, answer prompts do not.
	if messages[0].Role == "system" {
		m.expandCalls++
		if m.expandErr != nil {
			return nil, m.expandErr
		}
		return &models.Completion{Text: m.expandText, TokenUsage: 10}, nil
	}
	m.answerCalls++
	if m.answerErr != nil {
		return nil, m.answerErr
	}
	return &models.Completion{Text: m.answerText, TokenUsage: 42}, nil
}

func (m *fakeModel) EmbedText(_ context.Context, input string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.embedFn != nil {
		return m.embedFn(input), nil
	}
	return []float32{float32(len(input)), 1}, nil
}

type fakeVectorStore struct {
	mu        sync.Mutex
	stored    []StoredChunk
	queryFn   func(vector []float32, k int) ([]RetrievedChunk, error)
	upsertErr error
	upserts   int
	queries   int
}

func (f *fakeVectorStore) Init(context.Context, int) error { return nil }
func (f *fakeVectorStore) Close() error                    { return nil }

func (f *fakeVectorStore) UpsertBatch(_ context.Context, batch []StoredChunk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	f.stored = append(f.stored, batch...)
	return nil
}

func (f *fakeVectorStore) Query(_ context.Context, vector []float32, k int) ([]RetrievedChunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++
	if f.queryFn != nil {
		return f.queryFn(vector, k)
	}
	out := make([]RetrievedChunk, 0, len(f.stored))
	for _, sc := range f.stored {
		out = append(out, RetrievedChunk{Chunk: sc.Chunk, Score: 1})
	}
	return out, nil
}

type fakeHistory struct {
	mu        sync.Mutex
	documents []storage.DocumentRecord
	queries   []storage.QueryRecord
}

func (f *fakeHistory) SaveDocument(_ context.Context, doc storage.DocumentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents = append(f.documents, doc)
	return nil
}

func (f *fakeHistory) ListDocuments(context.Context) ([]storage.DocumentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storage.DocumentRecord(nil), f.documents...), nil
}

func (f *fakeHistory) SaveQuery(_ context.Context, q storage.QueryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return nil
}

func (f *fakeHistory) Close() error { return nil }

func newTestService(t *testing.T, model *fakeModel, vectors *fakeVectorStore) (*Service, *fakeHistory) {
	t.Helper()
	history := &fakeHistory{}
	svc := &Service{
		vectors:    vectors,
		model:      model,
		history:    history,
		splitter:   NewSplitter(1024, 100),
		tempFolder: t.TempDir(),
		topK:       4,
	}
	return svc, history
}
