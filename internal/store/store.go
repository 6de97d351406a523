// Package store is the durable item cache backed by SQLite. A persisted item
// with a non-empty summary is the enrichment cache hit that keeps the pipeline
// from ever summarizing the same item twice.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"agentdigest/internal/core"
)

// Store persists enriched items keyed by id.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (and if needed creates) the item database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "items.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

// initialize creates the items table and indexes.
func (s *Store) initialize() error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT,
			source TEXT,
			kind TEXT,
			published TEXT,
			fetched_at TEXT,
			content_text TEXT,
			content_hash TEXT,
			bucket TEXT,
			score REAL,
			summary TEXT,
			why_it_matters TEXT,
			actions TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_published ON items(published);`,
		`CREATE INDEX IF NOT EXISTS idx_items_bucket ON items(bucket);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetItem returns the persisted item for id, or nil when absent.
func (s *Store) GetItem(id string) (*core.Item, error) {
	query := `
	SELECT id, url, title, source, kind, published, fetched_at,
	       content_text, content_hash, bucket, score, summary, why_it_matters, actions
	FROM items WHERE id = ?`

	row := s.db.QueryRow(query, id)

	var item core.Item
	var kind, actionsJSON string

	err := row.Scan(
		&item.ID,
		&item.URL,
		&item.Title,
		&item.Source,
		&kind,
		&item.Published,
		&item.FetchedAt,
		&item.ContentText,
		&item.ContentHash,
		&item.Bucket,
		&item.Score,
		&item.Summary,
		&item.WhyItMatters,
		&actionsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item %s: %w", id, err)
	}

	item.Kind = core.Kind(kind)
	if actionsJSON != "" {
		if err := json.Unmarshal([]byte(actionsJSON), &item.Actions); err != nil {
			return nil, fmt.Errorf("failed to decode actions for item %s: %w", id, err)
		}
	}
	return &item, nil
}

// UpsertItem inserts the item or overwrites every non-id column on conflict.
// The write runs in a single transaction so a crash between items leaves
// already-persisted rows intact.
func (s *Store) UpsertItem(item *core.Item) error {
	actionsJSON, err := json.Marshal(item.Actions)
	if err != nil {
		return fmt.Errorf("failed to encode actions: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
	INSERT INTO items
		(id, url, title, source, kind, published, fetched_at,
		 content_text, content_hash, bucket, score, summary, why_it_matters, actions)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		url = excluded.url,
		title = excluded.title,
		source = excluded.source,
		kind = excluded.kind,
		published = excluded.published,
		fetched_at = excluded.fetched_at,
		content_text = excluded.content_text,
		content_hash = excluded.content_hash,
		bucket = excluded.bucket,
		score = excluded.score,
		summary = excluded.summary,
		why_it_matters = excluded.why_it_matters,
		actions = excluded.actions`

	_, err = tx.Exec(query,
		item.ID,
		item.URL,
		item.Title,
		item.Source,
		string(item.Kind),
		item.Published,
		item.FetchedAt,
		item.ContentText,
		item.ContentHash,
		item.Bucket,
		item.Score,
		item.Summary,
		item.WhyItMatters,
		string(actionsJSON),
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit item %s: %w", item.ID, err)
	}
	return nil
}

// Stats describes the current cache contents.
type Stats struct {
	ItemCount     int
	EnrichedCount int
	Size          int64
	LastUpdated   time.Time
}

// GetStats returns item counts and the database file size.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&stats.ItemCount); err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM items WHERE summary != ''`).Scan(&stats.EnrichedCount); err != nil {
		return nil, fmt.Errorf("failed to count enriched items: %w", err)
	}

	if fileInfo, err := os.Stat(s.path); err == nil {
		stats.Size = fileInfo.Size()
		stats.LastUpdated = fileInfo.ModTime()
	}
	return stats, nil
}
