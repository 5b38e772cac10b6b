package rag

import "strings"

type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

// NewSplitter assumes overlap < size; the configs package enforces that once
// at startup.
func NewSplitter(size, overlap int) *Splitter {
	return &Splitter{chunkSize: size, chunkOverlap: overlap}
}

// Split cuts text into windows of at most chunkSize runes, each window after
// the first overlapping the previous by up to chunkOverlap runes. Cuts land
// on a paragraph, sentence or word boundary when one exists inside the
// window, on a hard rune cut otherwise. Text shorter than chunkSize yields
// exactly one chunk.
func (s *Splitter) Split(text, source string) []Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []Chunk
	start, prevCut := 0, 0
	for {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, Chunk{
				Text:       string(runes[start:]),
				Source:     source,
				ChunkIndex: len(chunks),
			})
			return chunks
		}

		cut := breakPoint(runes, start, end, prevCut)
		chunks = append(chunks, Chunk{
			Text:       string(runes[start:cut]),
			Source:     source,
			ChunkIndex: len(chunks),
		})
		prevCut = cut

		next := cut - s.chunkOverlap
		if next <= start {
			next = cut
		}
		start = next
	}
}

// breakPoint picks the latest natural boundary inside the window, most
// coherent separator first, and falls back to a hard cut at end. A boundary
// is only accepted past min, the previous chunk's end, so every chunk
// extends the covered text; a cut inside the overlap prefix would emit a
// chunk fully contained in its predecessor.
func breakPoint(runes []rune, start, end, min int) int {
	window := string(runes[start:end])
	for _, sep := range []string{"\n\n", "\n", ". ", " "} {
		if i := strings.LastIndex(window, sep); i > 0 {
			if cut := start + len([]rune(window[:i+len(sep)])); cut > min {
				return cut
			}
		}
	}
	return end
}
