package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/richinex/inkwell/post"
)

// SqliteStore implements Store and SentTracker on a SQLite database.
// Posts are kept in insertion order by id; the sent ledger is its own table.
type SqliteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSqlite opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func OpenSqlite(path string) (*SqliteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	return newSqliteStore(db)
}

// NewSqliteInMemory creates an in-memory database (useful for testing).
func NewSqliteInMemory() (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	return newSqliteStore(db)
}

func newSqliteStore(db *sql.DB) (*SqliteStore, error) {
	store := &SqliteStore{db: db, logger: slog.Default()}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// WithLogger sets the logger used for fail-soft reads.
func (s *SqliteStore) WithLogger(logger *slog.Logger) *SqliteStore {
	if logger != nil {
		s.logger = logger.With("store", "sqlite")
	}
	return s
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			content TEXT NOT NULL,
			excerpt TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			meta TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			read_time INTEGER NOT NULL DEFAULT 0,
			keyword TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS sent (
			post_id INTEGER PRIMARY KEY,
			sent_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns every post ordered by id. Query failures yield an empty slice.
func (s *SqliteStore) Load(ctx context.Context) []post.Post {
	posts, err := s.loadPosts(ctx, s.db)
	if err != nil {
		s.logger.Warn("content store unreadable, treating as empty", "error", err)
		return []post.Post{}
	}
	return posts
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *SqliteStore) loadPosts(ctx context.Context, q queryer) ([]post.Post, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, title, slug, content, excerpt, image, meta, date, author, read_time, keyword
		 FROM posts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	// Start with empty slice, not nil
	posts := []post.Post{}
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Image,
			&p.Meta, &p.Date, &p.Author, &p.ReadTime, &p.Keyword); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Append inserts p with the next id inside one transaction.
func (s *SqliteStore) Append(ctx context.Context, p post.Post) (post.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return post.Post{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxID int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM posts").Scan(&maxID); err != nil {
		return post.Post{}, fmt.Errorf("failed to read max id: %w", err)
	}
	p.ID = maxID + 1

	_, err = tx.ExecContext(ctx,
		`INSERT INTO posts (id, title, slug, content, excerpt, image, meta, date, author, read_time, keyword)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.Image, p.Meta, p.Date, p.Author, p.ReadTime, p.Keyword)
	if err != nil {
		return post.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return post.Post{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("post stored", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// IsMarked reports whether id is in the sent table. Query failures report false.
func (s *SqliteStore) IsMarked(ctx context.Context, id int) bool {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sent WHERE post_id = ?", id).Scan(&count)
	if err != nil {
		s.logger.Warn("sent ledger unreadable, treating as unmarked", "id", id, "error", err)
		return false
	}
	return count > 0
}

// Mark records id in the sent table. Marking twice is a no-op.
func (s *SqliteStore) Mark(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO sent (post_id) VALUES (?)", id)
	if err != nil {
		return fmt.Errorf("failed to mark post %d as sent: %w", id, err)
	}
	return nil
}
