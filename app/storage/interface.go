package storage

import (
	"context"
	"time"
)

type Interface interface {
	SaveDocument(ctx context.Context, doc DocumentRecord) error
	ListDocuments(ctx context.Context) ([]DocumentRecord, error)
	SaveQuery(ctx context.Context, q QueryRecord) error
	Close() error
}

// DocumentRecord is one completed ingestion. Source keeps the
// timestamp-prefixed name the chunks were stored under, so repeated uploads
// of the same file stay distinguishable.
type DocumentRecord struct {
	ID        int64     `json:"id" db:"id"`
	Source    string    `json:"source" db:"source"`
	Chunks    int       `json:"chunks" db:"chunks"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type QueryRecord struct {
	ID         int64     `json:"id" db:"id"`
	Question   string    `json:"question" db:"question"`
	Success    bool      `json:"success" db:"success"`
	DurationMS int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
