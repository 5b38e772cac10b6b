package rag

import (
	"fmt"
	"strings"
)

// assembleContext linearizes retrieved chunks into the grounding context and
// one citation line per chunk, both in retrieval order. The citation lines
// are display-only; they carry no retrieval semantics. Callers must have
// rejected an empty result set already.
func assembleContext(retrieved []RetrievedChunk) (string, []string) {
	texts := make([]string, len(retrieved))
	sources := make([]string, len(retrieved))
	for i, rc := range retrieved {
		texts[i] = rc.Text
		sources[i] = fmt.Sprintf("Source: %s (Chunk %d)", rc.Source, rc.ChunkIndex)
	}
	return strings.Join(texts, "\n"), sources
}
