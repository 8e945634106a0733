package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"PaperHarvest/internal/domain"
	"PaperHarvest/internal/ports"
)

// SQLiteIndex keeps an audit index of every persisted paper. The pipeline
// only writes to it; it is never consulted during a crawl.
type SQLiteIndex struct {
	db *sql.DB
}

var _ ports.PaperIndex = (*SQLiteIndex)(nil)

const schema = `CREATE TABLE IF NOT EXISTS papers (
    arxiv_id   TEXT PRIMARY KEY,
    date       TEXT NOT NULL,
    title      TEXT NOT NULL,
    upvotes    INTEGER NOT NULL DEFAULT 0,
    summarized INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

// Open opens (creating if needed) the index database at path.
func Open(path string) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteIndex{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteIndex) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record upserts one row per persisted paper.
func (s *SQLiteIndex) Record(ctx context.Context, date string, papers []domain.PaperRecord) error {
	if s == nil || s.db == nil || len(papers) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, paper := range papers {
		summarized := 0
		if paper.Summary != "" {
			summarized = 1
		}

		query, args, err := sq.Insert("papers").
			Columns("arxiv_id", "date", "title", "upvotes", "summarized", "created_at", "updated_at").
			Values(paper.ArxivID, date, paper.Title, paper.Upvotes, summarized, now, now).
			Suffix(`ON CONFLICT (arxiv_id) DO UPDATE SET
                date = excluded.date,
                title = excluded.title,
                upvotes = excluded.upvotes,
                summarized = excluded.summarized,
                updated_at = excluded.updated_at`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build upsert: %w", err)
		}

		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert paper %s: %w", paper.ArxivID, err)
		}
	}
	return nil
}

// Recorded reports which of the given identifiers are already indexed.
func (s *SQLiteIndex) Recorded(ctx context.Context, ids []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if s == nil || s.db == nil || len(ids) == 0 {
		return result, nil
	}

	query, args, err := sq.Select("arxiv_id").From("papers").Where(sq.Eq{"arxiv_id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}
