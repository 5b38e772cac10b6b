package rag

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"GoRagServer/app/documents"
	"GoRagServer/app/storage"
)

// Ingest runs the full pipeline for one uploaded file: extension gate, temp
// save, text extraction, chunking, embedding, one batch upsert. Either every
// chunk of the document is stored or the ingestion fails as a whole. The
// temp file is removed on every exit path. Returns the chunk count.
func (s *Service) Ingest(ctx context.Context, filename string, file io.Reader) (int, error) {
	if !documents.Allowed(filename) {
		return 0, fmt.Errorf("%w: only PDF or Markdown files are allowed", documents.ErrUnsupportedType)
	}

	path, err := s.saveTemp(filename, file)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Printf("⚠️ Failed to delete temp file %s: %v", path, err)
		}
	}()

	text, err := documents.Load(path)
	if err != nil {
		return 0, err
	}

	source := filepath.Base(path)
	chunks := s.splitter.Split(text, source)

	batch := make([]StoredChunk, 0, len(chunks))
	for _, ch := range chunks {
		vec, err := s.model.EmbedText(ctx, ch.Text)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %s: %w", ch.ChunkIndex, source, err)
		}
		batch = append(batch, StoredChunk{Chunk: ch, Vector: vec})
	}

	if err = s.vectors.UpsertBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("store %d chunks of %s: %w", len(batch), source, err)
	}

	if err = s.history.SaveDocument(ctx, storage.DocumentRecord{
		Source:    source,
		Chunks:    len(chunks),
		CreatedAt: time.Now(),
	}); err != nil {
		log.Printf("⚠️ Error recording ingestion of %s: %v", source, err)
	}

	log.Printf("✅ Successfully embedded %d chunks of %s", len(chunks), source)
	return len(chunks), nil
}

// saveTemp persists the upload under a timestamp-prefixed name so repeated
// uploads of the same file never overwrite each other. Chunks are stored
// under this name, which keeps re-ingestions distinguishable in the index.
func (s *Service) saveTemp(filename string, file io.Reader) (string, error) {
	if err := os.MkdirAll(s.tempFolder, os.ModePerm); err != nil {
		return "", fmt.Errorf("create temp folder: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(filename))
	path := filepath.Join(s.tempFolder, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save upload %s: %w", filename, err)
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("save upload %s: %w", filename, err)
	}

	return path, nil
}
