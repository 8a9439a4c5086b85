// Package stem reduces words to heuristic stems.
package stem

import (
	"strings"
	"unicode"

	porterstemmer "github.com/reiver/go-porterstemmer"
)

// Stemmer maps a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// Porter is the classic Porter stemmer for English. It lowercases its input;
// tokens without letters (numbers, punctuation) are returned unchanged.
type Porter struct{}

// NewPorter returns a Porter stemmer.
func NewPorter() Porter { return Porter{} }

// Stem implements Stemmer.
func (Porter) Stem(word string) string {
	if !hasLetter(word) {
		return word
	}
	return porterstemmer.StemString(strings.ToLower(word))
}

// Func adapts a plain function to the Stemmer interface.
type Func func(string) string

// Stem implements Stemmer.
func (f Func) Stem(word string) string { return f(word) }

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
