package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/richinex/inkwell/internal/atomicfile"
)

// SentFile tracks newsletter sent-state in a JSON array of post ids.
type SentFile struct {
	path   string
	logger *slog.Logger
}

// NewSentFile creates a tracker backed by the JSON file at path.
func NewSentFile(path string, logger *slog.Logger) *SentFile {
	if logger == nil {
		logger = slog.Default()
	}
	return &SentFile{path: path, logger: logger.With("ledger", path)}
}

// IsMarked reports whether id is in the ledger. Read failures report false.
func (s *SentFile) IsMarked(_ context.Context, id int) bool {
	return slices.Contains(s.load(), id)
}

// Mark adds id to the ledger and rewrites it. An unreadable ledger is
// treated as empty.
func (s *SentFile) Mark(_ context.Context, id int) error {
	ids := s.load()
	if slices.Contains(ids, id) {
		return nil
	}
	ids = append(ids, id)

	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sent ids: %w", err)
	}
	if err := atomicfile.Write(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write sent ledger: %w", err)
	}
	return nil
}

// load returns the recorded ids, or an empty slice on any failure.
func (s *SentFile) load() []int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("sent ledger unreadable, treating as empty", "error", err)
		}
		return []int{}
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("sent ledger unparsable, treating as empty", "error", err)
		return []int{}
	}
	return ids
}
