package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

type SQLiteStorage struct {
	db *sql.DB
}

var _ Interface = &SQLiteStorage{}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open SQLite DB at %s: %w", dbPath, err)
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS documents (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            source TEXT NOT NULL,
            chunks INTEGER NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        );
        CREATE TABLE IF NOT EXISTS queries (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            question TEXT NOT NULL,
            success INTEGER NOT NULL,
            duration_ms INTEGER NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_documents_source ON documents (source);
    `)
	if err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc DocumentRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (source, chunks, created_at) VALUES (?, ?, datetime(?))`,
		doc.Source, doc.Chunks, doc.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		log.Printf("⚠️ Error saving document record for %s: %v", doc.Source, err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) ListDocuments(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, chunks, created_at FROM documents ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		var createdAt string
		if err = rows.Scan(&doc.ID, &doc.Source, &doc.Chunks, &createdAt); err != nil {
			log.Printf("⚠️ Error scanning document row: %v", err)
			continue
		}
		doc.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *SQLiteStorage) SaveQuery(ctx context.Context, q QueryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (question, success, duration_ms, created_at) VALUES (?, ?, ?, datetime(?))`,
		q.Question, q.Success, q.DurationMS, q.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		log.Printf("⚠️ Error saving query record: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
