// Package storage persists published posts and the newsletter sent-state.
//
// Information Hiding:
// - On-disk layout (JS data file, JSON ledger, SQLite tables) hidden behind Store and SentTracker
// - Reads fail soft: callers see empty state, never a read error
// - Writes rewrite the whole state; one writer at a time is assumed, nothing locks
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/post"
)

// Store is the content store. It exclusively owns read-modify-write of the
// collection of published posts, ordered by append, newest last.
type Store interface {
	// Load returns every post. Any read or parse failure yields an empty slice.
	Load(ctx context.Context) []post.Post

	// Append assigns the next id to p, persists it after every existing post
	// and returns the stored post.
	Append(ctx context.Context, p post.Post) (post.Post, error)
}

// SentTracker records which posts already triggered the newsletter.
type SentTracker interface {
	// IsMarked reports whether id was marked. Read failures report false.
	IsMarked(ctx context.Context, id int) bool

	// Mark records id. Marking an id twice is a no-op.
	Mark(ctx context.Context, id int) error
}

// Open returns the store and tracker for the configured backend, plus a
// close function to call when done.
func Open(cfg config.StoreConfig, logger *slog.Logger) (Store, SentTracker, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case config.BackendSqlite:
		s, err := OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return s.WithLogger(logger), s.WithLogger(logger), s.Close, nil
	case config.BackendFile, "":
		noop := func() error { return nil }
		return NewFileStore(cfg.BlogData, logger), NewSentFile(cfg.Sent, logger), noop, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
