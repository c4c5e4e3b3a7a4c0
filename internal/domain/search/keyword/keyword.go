// Package keyword turns a free-text assistant query into the set of terms
// the content scan matches against.
package keyword

import (
	"regexp"
	"strings"
)

// MinLength is the shortest plain word kept as a keyword.
const MinLength = 3

var (
	quotedPhrase = regexp.MustCompile(`"([^"]+)"`)
	camelCase    = regexp.MustCompile(`\b[a-z]+(?:[A-Z][a-z0-9]*)+\b`)
	snakeCase    = regexp.MustCompile(`\b[A-Za-z0-9]+(?:_[A-Za-z0-9]+)+\b`)
	punctuation  = regexp.MustCompile(`[^\pL\pN\s]`)
)

// stopwords are articles, pronouns, and common query verbs that carry no
// search signal on their own.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true,
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"has": true, "had": true, "what": true, "when": true, "where": true,
	"which": true, "who": true, "how": true, "why": true, "you": true,
	"your": true, "our": true, "their": true, "them": true, "they": true,
	"can": true, "could": true, "would": true, "should": true,
	"show": true, "find": true, "search": true, "tell": true, "about": true,
	"please": true, "give": true, "list": true, "all": true, "any": true,
	"get": true, "make": true, "want": true, "need": true, "know": true,
}

// Extract derives a deduplicated keyword set from a raw query. Quoted
// substrings and identifier-like tokens (camelCase, snake_case) are kept
// verbatim so exact references embedded in notes stay findable; the rest
// of the query is lowercased, stripped of punctuation, and filtered by
// length and stopwords. An empty result means there is nothing to search.
func Extract(query string) []string {
	seen := make(map[string]bool)
	var keywords []string
	add := func(t string) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		keywords = append(keywords, t)
	}

	for _, m := range quotedPhrase.FindAllStringSubmatch(query, -1) {
		add(m[1])
	}
	for _, m := range camelCase.FindAllString(query, -1) {
		add(m)
	}
	for _, m := range snakeCase.FindAllString(query, -1) {
		add(m)
	}

	plain := punctuation.ReplaceAllString(strings.ToLower(query), " ")
	for _, w := range strings.Fields(plain) {
		if len(w) < MinLength || stopwords[w] {
			continue
		}
		add(w)
	}

	return keywords
}
