package rag

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"GoRagServer/app/models"
)

const expandFanOut = 5

// expandQuery asks the model for five alternative phrasings of the question
// to improve retrieval recall. Duplicates and weak paraphrases are not
// filtered here; retrieval deduplication takes care of them.
func (s *Service) expandQuery(ctx context.Context, question string) ([]string, error) {
	completion, err := s.model.Generate(ctx, models.ExpandMessages(question), 0.7)
	if err != nil {
		return nil, fmt.Errorf("expand query: %w", err)
	}

	queries := parseQueryLines(completion.Text, expandFanOut)
	if len(queries) == 0 {
		return nil, fmt.Errorf("expand query: %w: no usable phrasings in %q",
			models.ErrGenerationUnavailable, completion.Text)
	}
	return queries, nil
}

// listMarker matches the numbering ("1." / "2)") or bullets ("- ", "* ")
// models tend to add despite instructions. Digits that are part of the
// phrasing itself ("2020 Olympics...") are left alone.
var listMarker = regexp.MustCompile(`^(\d+[.)]\s*|[-*]\s+)`)

// parseQueryLines keeps up to max non-empty lines, stripping list markers.
func parseQueryLines(text string, max int) []string {
	var queries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = listMarker.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		queries = append(queries, line)
		if len(queries) == max {
			break
		}
	}
	return queries
}
