// Package sqlite implements the batch cache on a local SQLite file. Each
// saved batch is one row holding the JSON-encoded ticket list; the latest
// read selects the newest upload timestamp.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"ticket-analyzer/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// keepBatches bounds how many historical batches are retained after a save.
const keepBatches = 10

// Config configures the SQLite store.
type Config struct {
	Path string // path to the database file, e.g. "data/tickets.db"
}

// Store is a SQLite-backed batch cache.
type Store struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for health checks.
func (s *Store) DB() *sql.DB { return s.db }

// New opens the database with WAL mode and creates the schema.
func New(cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Single logical writer, the CLI runs one save per invocation.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite] opened batch cache at %s", cfg.Path)
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ticket_batches (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			uploaded_at INTEGER NOT NULL,
			data        TEXT    NOT NULL
		);
	`)
	return err
}

// Save inserts the batch as a single row, then prunes old batches. The insert
// is one statement, so a concurrent read either sees the whole batch or the
// previous one.
func (s *Store) Save(ctx context.Context, batch model.TicketBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ticket_batches (uploaded_at, data) VALUES (?, ?)`,
		batch.UploadedAt.UnixNano(), string(data),
	)
	if err != nil {
		return fmt.Errorf("sqlite insert batch: %w", err)
	}

	// Prune old batches, keep the most recent few.
	_, err = s.db.ExecContext(ctx,
		`DELETE FROM ticket_batches WHERE id NOT IN (
			SELECT id FROM ticket_batches ORDER BY uploaded_at DESC, id DESC LIMIT ?
		)`, keepBatches)
	if err != nil {
		log.Printf("[sqlite] prune batches warning: %v", err)
	}

	return nil
}

// LoadLatest returns the most recently uploaded batch, or (nil, nil) when the
// cache is empty.
func (s *Store) LoadLatest(ctx context.Context) (*model.TicketBatch, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM ticket_batches
		ORDER BY uploaded_at DESC, id DESC
		LIMIT 1
	`).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite read latest batch: %w", err)
	}

	var batch model.TicketBatch
	if err := json.Unmarshal([]byte(data), &batch); err != nil {
		return nil, fmt.Errorf("unmarshal batch: %w", err)
	}
	return &batch, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
