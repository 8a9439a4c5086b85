// Package stoplist provides stopword sets per language and a mutable manager
// that suggests corpus-specific stopwords.
package stoplist

import (
	"sort"
	"strings"
)

// Set is an immutable stopword set. Lookups use the lowercase form of the
// token. A nil *Set contains nothing.
type Set struct {
	terms map[string]struct{}
}

// NewSet builds a set from terms; blank terms are ignored.
func NewSet(terms []string) *Set {
	stops := make(map[string]struct{}, len(terms))
	for _, w := range terms {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		stops[w] = struct{}{}
	}
	return &Set{terms: stops}
}

// Contains reports whether token is a stopword.
func (s *Set) Contains(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.terms[strings.ToLower(token)]
	return ok
}

// Len returns the number of stopwords.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.terms)
}

// All returns the stopwords in sorted order.
func (s *Set) All() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, len(s.terms))
	for w := range s.terms {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// With returns a new set holding s plus extra.
func (s *Set) With(extra []string) *Set {
	return NewSet(append(s.All(), extra...))
}

// Without returns a new set holding s minus keep. Useful to retain negation
// words such as "not" when negation marking runs later.
func (s *Set) Without(keep []string) *Set {
	drop := NewSet(keep)
	var terms []string
	for _, w := range s.All() {
		if !drop.Contains(w) {
			terms = append(terms, w)
		}
	}
	return NewSet(terms)
}
