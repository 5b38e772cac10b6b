package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"GoRagServer/app/models"
)

// UnparseableAnswer replaces the model output when the completion cannot be
// reduced to plain text.
const UnparseableAnswer = "Error: Unable to parse response from the model."

type synthesizedAnswer struct {
	Text        string
	TokenUsage  int
	Unparseable bool
}

// synthesize asks the model to answer from the supplied context only. The
// closed-book constraint lives in the prompt; it is not verified post hoc.
// An unusable completion degrades to the sentinel answer instead of failing
// the query, so callers always get a best-effort string.
func (s *Service) synthesize(ctx context.Context, question, contextText string) (*synthesizedAnswer, error) {
	completion, err := s.model.Generate(ctx, models.AnswerMessages(question, contextText), 0.2)
	if err != nil {
		return nil, fmt.Errorf("synthesize answer: %w", err)
	}

	if strings.TrimSpace(completion.Text) == "" {
		log.Printf("⚠️ Model returned no parseable answer text")
		return &synthesizedAnswer{
			Text:        UnparseableAnswer,
			TokenUsage:  completion.TokenUsage,
			Unparseable: true,
		}, nil
	}

	return &synthesizedAnswer{
		Text:       completion.Text,
		TokenUsage: completion.TokenUsage,
	}, nil
}
