package models

import "context"

type Interface interface {
	Generate(ctx context.Context, messages []Message, temperature float64) (*Completion, error)
	EmbedText(ctx context.Context, input string) ([]float32, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is one generated answer plus the token usage the backend reported.
type Completion struct {
	Text       string
	TokenUsage int
}
