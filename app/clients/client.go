package clients

import (
	"context"

	"GoRagServer/app/rag"
)

// Answerer is the slice of the rag service a chat connector needs.
type Answerer interface {
	Answer(ctx context.Context, question string) (*rag.GroundedAnswer, error)
}

type Interface interface {
	Subscribe(Answerer)
}

type Client struct {
	answerer Answerer
}
