// Package dsa provides the suffix array behind keyword usage lookups.
//
// Keyword queues are checked against every published title on each run.
// Titles are joined once into a single text and indexed, so each keyword
// costs one binary search instead of a scan over all titles.
package dsa

import (
	"cmp"
	"slices"
	"strings"
)

// SuffixArray indexes a text for O(m log n) substring tests, m being the
// pattern length and n the text length.
type SuffixArray struct {
	text string
	sa   []int // sa[i] is the start of the i-th smallest suffix
}

// BuildSuffixArray indexes text by prefix doubling in O(n log² n).
func BuildSuffixArray(text string) *SuffixArray {
	n := len(text)
	sa := make([]int, n)
	rank := make([]int, n)
	for i := range n {
		sa[i] = i
		rank[i] = int(text[i])
	}

	// rankAt is the rank of the suffix at i, or -1 past the end so shorter
	// suffixes sort first.
	rankAt := func(i int) int {
		if i < n {
			return rank[i]
		}
		return -1
	}

	next := make([]int, n)
	for k := 1; n > 1; k *= 2 {
		slices.SortFunc(sa, func(a, b int) int {
			if c := cmp.Compare(rank[a], rank[b]); c != 0 {
				return c
			}
			return cmp.Compare(rankAt(a+k), rankAt(b+k))
		})

		next[sa[0]] = 0
		for i := 1; i < n; i++ {
			prev, cur := sa[i-1], sa[i]
			next[cur] = next[prev]
			if rank[prev] != rank[cur] || rankAt(prev+k) != rankAt(cur+k) {
				next[cur]++
			}
		}
		copy(rank, next)

		if rank[sa[n-1]] == n-1 {
			break
		}
	}

	return &SuffixArray{text: text, sa: sa}
}

// Len returns the length of the indexed text.
func (s *SuffixArray) Len() int {
	return len(s.text)
}

// Contains reports whether pattern occurs in the text. The empty pattern
// never matches.
func (s *SuffixArray) Contains(pattern string) bool {
	if pattern == "" || len(s.sa) == 0 {
		return false
	}
	// First suffix not less than pattern; a match must start with it.
	i, _ := slices.BinarySearchFunc(s.sa, pattern, func(start int, p string) int {
		return strings.Compare(s.text[start:], p)
	})
	return i < len(s.sa) && strings.HasPrefix(s.text[s.sa[i]:], pattern)
}
