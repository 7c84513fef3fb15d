package images

import (
	"regexp"
	"strings"
)

// MaxTerms is how many words of the keyword go into a query.
const MaxTerms = 3

var wordPattern = regexp.MustCompile(`\b[a-z]+\b`)

var stopWords = map[string]bool{
	"how": true, "to": true, "the": true, "a": true, "an": true, "and": true,
	"or": true, "but": true, "in": true, "on": true, "at": true, "for": true,
	"with": true, "about": true, "as": true, "by": true, "is": true, "was": true,
	"are": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "should": true, "could": true, "may": true,
	"might": true, "can": true,
}

// QueryTerms returns up to MaxTerms content-bearing words of keyword:
// lowercase letters only, stop words and words of three letters or fewer dropped.
func QueryTerms(keyword string) []string {
	var terms []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(keyword), -1) {
		if stopWords[w] || len(w) <= 3 {
			continue
		}
		terms = append(terms, w)
		if len(terms) == MaxTerms {
			break
		}
	}
	return terms
}

// Query joins the keyword's terms with fixed context terms.
func Query(keyword string, context []string) string {
	return strings.Join(append(QueryTerms(keyword), context...), " ")
}
