package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Storage represents the SQLite parse history
type Storage struct {
	db *sql.DB
}

// Entry is one recorded parse
type Entry struct {
	ID        int64     `json:"id"`
	Input     string    `json:"input"`
	Result    time.Time `json:"result"`
	Zone      string    `json:"zone"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OK reports whether the parse succeeded
func (e Entry) OK() bool {
	return e.Error == ""
}

// NewStorage opens (and creates if needed) the history database
func NewStorage(dbPath string) (*Storage, error) {
	log.Debug().Str("path", dbPath).Msg("Opening database")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	storage := &Storage{db: db}

	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Debug().Msg("Database initialized successfully")
	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// initSchema creates the database schema. Instants are stored as Unix
// seconds so that ordering and pruning stay numeric.
func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL,
		result INTEGER,
		zone TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_parses_created_at ON parses(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// AddEntry records a parse. CreatedAt defaults to now.
func (s *Storage) AddEntry(entry *Entry) error {
	log.Debug().
		Str("input", entry.Input).
		Str("zone", entry.Zone).
		Bool("ok", entry.OK()).
		Msg("Adding history entry")

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var result sql.NullInt64
	if entry.OK() {
		result = sql.NullInt64{Int64: entry.Result.Unix(), Valid: true}
	}

	res, err := s.db.Exec(
		`INSERT INTO parses (input, result, zone, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.Input,
		result,
		entry.Zone,
		entry.Error,
		entry.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = id
	log.Debug().Int64("id", id).Msg("History entry added")
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less returns everything.
func (s *Storage) Recent(limit int) ([]Entry, error) {
	log.Debug().Int("limit", limit).Msg("Fetching history")

	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT id, input, result, zone, error, created_at
		FROM parses
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			result  sql.NullInt64
			created int64
		)
		if err := rows.Scan(&entry.ID, &entry.Input, &result, &entry.Zone, &entry.Error, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if result.Valid {
			entry.Result = time.Unix(result.Int64, 0)
		}
		entry.CreatedAt = time.Unix(created, 0)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	log.Debug().Int("count", len(entries)).Msg("Retrieved history")
	return entries, nil
}

// Prune deletes entries recorded before cutoff and returns how many
// were removed
func (s *Storage) Prune(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM parses WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned entries: %w", err)
	}

	log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("History pruned")
	return removed, nil
}

// Count returns the number of recorded parses
func (s *Storage) Count() (int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM parses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return total, nil
}
