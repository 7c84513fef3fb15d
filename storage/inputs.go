package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type queueFile struct {
	Queue []string `json:"queue"`
}

type subscribersFile struct {
	Subscribers []string `json:"subscribers"`
}

// LoadQueue reads the keyword queue from {"queue": [...]}. When the file is
// missing or unparsable, fallback is returned instead. Blank entries are dropped.
func LoadQueue(path string, fallback []string, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	var f queueFile
	if err := readJSON(path, &f); err != nil {
		logger.Warn("keyword queue unavailable, using profile keywords", "path", path, "error", err)
		return compact(fallback)
	}
	return compact(f.Queue)
}

// LoadSubscribers reads recipient addresses from {"subscribers": [...]}.
// Blank and duplicate addresses are dropped, first occurrence wins.
func LoadSubscribers(path string) ([]string, error) {
	var f subscribersFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(f.Subscribers))
	out := make([]string, 0, len(f.Subscribers))
	for _, addr := range compact(f.Subscribers) {
		key := strings.ToLower(addr)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, addr)
	}
	return out, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// compact trims entries and drops blank ones.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
