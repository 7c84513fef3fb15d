// Package keyword picks the next unit of work from the keyword queue.
//
// Information Hiding:
// - How "used" is derived (title substring index plus recorded keyword) hidden behind Select
// - Fallback policy applied only when every queued keyword is used
package keyword

import (
	"math/rand/v2"
	"strings"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/internal/dsa"
	"github.com/richinex/inkwell/post"
)

// DefaultKeyword is returned when the queue is empty.
const DefaultKeyword = "plagiarism checker India"

// titleSep joins titles in the index so a match never spans two titles.
const titleSep = "\x00"

// Index answers "has this keyword been used" against a post history.
type Index struct {
	titles   *dsa.SuffixArray
	recorded map[string]bool
}

// NewIndex builds the usage index for history.
func NewIndex(history []post.Post) *Index {
	lowered := make([]string, len(history))
	recorded := make(map[string]bool)
	for i, p := range history {
		lowered[i] = strings.ToLower(p.Title)
		if k := normalize(p.Keyword); k != "" {
			recorded[k] = true
		}
	}
	return &Index{
		titles:   dsa.BuildSuffixArray(strings.Join(lowered, titleSep)),
		recorded: recorded,
	}
}

// Used reports whether kw appears, case-insensitively, inside any title, or
// was recorded as the keyword of a stored post.
func (ix *Index) Used(kw string) bool {
	k := normalize(kw)
	if k == "" {
		return false
	}
	return ix.recorded[k] || ix.titles.Contains(k)
}

// Select returns the first keyword in queue not yet used by history.
// When every keyword is used, policy decides: config.FallbackRandom picks
// uniformly with rng, anything else returns queue[0]. A nil rng uses the
// global source. An empty queue yields DefaultKeyword.
func Select(history []post.Post, queue []string, policy string, rng *rand.Rand) string {
	if len(queue) == 0 {
		return DefaultKeyword
	}

	ix := NewIndex(history)
	for _, kw := range queue {
		if !ix.Used(kw) {
			return kw
		}
	}

	if policy == config.FallbackRandom {
		if rng == nil {
			return queue[rand.IntN(len(queue))]
		}
		return queue[rng.IntN(len(queue))]
	}
	return queue[0]
}

// Status is the usage of one queued keyword.
type Status struct {
	Keyword string `json:"keyword"`
	Used    bool   `json:"used"`
}

// Usage reports, in queue order, whether each keyword is used by history.
func Usage(history []post.Post, queue []string) []Status {
	ix := NewIndex(history)
	out := make([]Status, len(queue))
	for i, kw := range queue {
		out[i] = Status{Keyword: kw, Used: ix.Used(kw)}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
