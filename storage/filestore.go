package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/richinex/inkwell/internal/atomicfile"
	ijson "github.com/richinex/inkwell/internal/json"
	"github.com/richinex/inkwell/post"
)

// CollectionVar is the script variable the website reads posts from.
const CollectionVar = "allBlogs"

const fileHeader = "// Auto-generated blog data\n// Last updated: %s\n\n"

// FileStore keeps posts in a JavaScript data file that the website loads
// as-is. Each Append rewrites the whole file.
type FileStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// NewFileStore creates a store backed by the script file at path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		path:   path,
		logger: logger.With("store", path),
		now:    time.Now,
	}
}

// WithClock sets the clock used for the "Last updated" header.
func (s *FileStore) WithClock(now func() time.Time) *FileStore {
	s.now = now
	return s
}

// Path returns the data file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads every post. Missing, unreadable or unparsable files yield an
// empty slice.
func (s *FileStore) Load(_ context.Context) []post.Post {
	posts, err := s.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("content store not found, starting empty")
		} else {
			s.logger.Warn("content store unreadable, treating as empty", "error", err)
		}
		return []post.Post{}
	}
	return posts
}

// Append stores p with the next id and rewrites the file.
// A missing file starts a new collection. An existing file that cannot be
// parsed is left untouched and reported, so one bad edit does not wipe the
// published history.
func (s *FileStore) Append(_ context.Context, p post.Post) (post.Post, error) {
	posts, err := s.read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return post.Post{}, fmt.Errorf("refusing to overwrite %s: %w", s.path, err)
		}
		posts = []post.Post{}
	}

	p.ID = post.NextID(posts)
	posts = append(posts, p)

	data, err := s.render(posts)
	if err != nil {
		return post.Post{}, err
	}
	if err := atomicfile.Write(s.path, data, 0o644); err != nil {
		return post.Post{}, fmt.Errorf("failed to write content store: %w", err)
	}

	s.logger.Info("post stored", "id", p.ID, "slug", p.Slug, "total", len(posts))
	return p, nil
}

func (s *FileStore) read() ([]post.Post, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	posts, err := ijson.DecodeAssigned[[]post.Post](data, CollectionVar)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []post.Post{}
	}
	return posts, nil
}

func (s *FileStore) render(posts []post.Post) ([]byte, error) {
	body, err := ijson.MarshalIndent(posts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode posts: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, fileHeader, s.now().Format(time.DateTime))
	buf.WriteString("const " + CollectionVar + " = ")
	buf.Write(body)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}
