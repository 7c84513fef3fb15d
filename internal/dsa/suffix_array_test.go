package dsa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	sa := BuildSuffixArray("banana")
	assert.Equal(t, 6, sa.Len())

	for _, p := range []string{"a", "ana", "nana", "banana", "b"} {
		assert.True(t, sa.Contains(p), p)
	}
	for _, p := range []string{"nab", "bananas", "c", "aa"} {
		assert.False(t, sa.Contains(p), p)
	}
}

func TestEmptyInputs(t *testing.T) {
	assert.False(t, BuildSuffixArray("").Contains("a"))
	assert.False(t, BuildSuffixArray("abc").Contains(""))
	assert.True(t, BuildSuffixArray("x").Contains("x"))
}

func TestContainsMatchesStringsContains(t *testing.T) {
	text := strings.Join([]string{
		"how to reduce turnitin similarity score: 10 proven methods",
		"turnitin guide",
		"10 plagiarism mistakes students make",
	}, "\x00")
	sa := BuildSuffixArray(text)

	for _, p := range []string{
		"turnitin", "turnitin guide", "plagiarism tips", "proven", "mistakes students",
		"score: 10", "guide\x0010", "zzz", "t", "make", "how to reduce turnitin similarity score: 10 proven methods!",
	} {
		assert.Equal(t, strings.Contains(text, p), sa.Contains(p), "pattern %q", p)
	}
}
