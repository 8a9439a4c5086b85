// Package lemma reduces words to dictionary base forms, optionally guided by
// a part-of-speech hint, and tags tokens with parts of speech.
package lemma

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Dictionary is a lemma lookup without POS information.
// *golem.Lemmatizer satisfies it.
type Dictionary interface {
	// Lemma returns the preferred lemma, or the lowercased word when unknown.
	Lemma(word string) string
	// Lemmas returns every known lemma of word.
	Lemmas(word string) []string
}

// Lemmatizer combines a lemma dictionary, per-POS irregular forms and
// WordNet-style suffix detachment rules. It is read-only after construction
// and safe for concurrent use.
type Lemmatizer struct {
	dict       Dictionary
	exceptions *Exceptions
}

// New creates a lemmatizer over dict. A nil exceptions table uses the
// built-in English irregulars.
func New(dict Dictionary, exceptions *Exceptions) *Lemmatizer {
	if exceptions == nil {
		exceptions = DefaultExceptions()
	}
	return &Lemmatizer{dict: dict, exceptions: exceptions}
}

// NewEnglish loads the golem English dictionary. Loading takes a moment and a
// few megabytes, so build one Lemmatizer and share it.
func NewEnglish(exceptions *Exceptions) (*Lemmatizer, error) {
	dict, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return New(dict, exceptions), nil
}

// detachment rules per POS, tried in order; longer suffixes first.
var detachments = map[POS][][2]string{
	Noun: {
		{"ches", "ch"}, {"shes", "sh"}, {"ses", "s"}, {"xes", "x"},
		{"zes", "z"}, {"ves", "f"}, {"ves", "fe"}, {"ies", "y"},
		{"men", "man"}, {"s", ""},
	},
	Verb: {
		{"ies", "y"}, {"ing", "e"}, {"ing", ""}, {"es", "e"},
		{"es", ""}, {"ed", "e"}, {"ed", ""}, {"s", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
}

// Lemma returns the base form of word. With pos Unknown the dictionary's
// preferred lemma is used. Otherwise irregular forms for pos are checked
// first, then suffix rules for pos whose result the dictionary knows as a
// lemma of word; if none applies the word is returned unchanged.
//
// Tokens without letters are returned as is. When the lemma equals the
// lowercased word, the original casing is kept.
func (l *Lemmatizer) Lemma(word string, pos POS) string {
	if !hasLetter(word) {
		return word
	}
	lower := strings.ToLower(word)

	base := l.lemma(lower, pos)
	if base == lower {
		return word
	}
	return base
}

func (l *Lemmatizer) lemma(word string, pos POS) string {
	if pos == Unknown {
		if l.dict == nil {
			return word
		}
		if base := l.dict.Lemma(word); base != "" {
			return base
		}
		return word
	}

	if base, ok := l.exceptions.Lookup(word, pos); ok {
		return base
	}
	if l.dict == nil {
		return word
	}

	known := make(map[string]struct{})
	for _, c := range l.dict.Lemmas(word) {
		known[strings.ToLower(c)] = struct{}{}
	}
	if len(known) == 0 {
		return word
	}
	if _, ok := known[word]; ok {
		return word
	}
	for _, rule := range detachments[pos] {
		if !strings.HasSuffix(word, rule[0]) || len(word) <= len(rule[0]) {
			continue
		}
		candidate := word[:len(word)-len(rule[0])] + rule[1]
		if _, ok := known[candidate]; ok {
			return candidate
		}
	}
	return word
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
