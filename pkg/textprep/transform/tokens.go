// Package transform holds token-sequence helpers. Every function returns a
// new slice and leaves its input untouched.
package transform

import (
	"fmt"

	"github.com/cognicore/textprep/pkg/textprep/lemma"
	"github.com/cognicore/textprep/pkg/textprep/stem"
	"github.com/cognicore/textprep/pkg/textprep/stoplist"
	"github.com/cognicore/textprep/pkg/textprep/tokenize"
)

// Lemmatizer is the lemma lookup the helpers need. *lemma.Lemmatizer
// satisfies it.
type Lemmatizer interface {
	Lemma(word string, pos lemma.POS) string
}

// RemovePunct drops tokens that are a single ASCII punctuation character.
func RemovePunct(tokens []string) []string {
	return filter(tokens, func(tok string) bool { return !tokenize.IsPunct(tok) })
}

// RemoveStopwords drops tokens whose lowercase form is in stops.
func RemoveStopwords(tokens []string, stops *stoplist.Set) []string {
	return filter(tokens, func(tok string) bool { return !stops.Contains(tok) })
}

// StemTokens replaces each token with its stem.
func StemTokens(tokens []string, s stem.Stemmer) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = s.Stem(tok)
	}
	return out
}

// LemmatizeTokens replaces each token with its lemma, without POS hints.
func LemmatizeTokens(tokens []string, l Lemmatizer) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = l.Lemma(tok, lemma.Unknown)
	}
	return out
}

// LemmatizeWithPOS tags tokens and lemmatizes each with its POS. Tags the
// tagger cannot map fall back to noun rules (see lemma.FromPennTag).
func LemmatizeWithPOS(tokens []string, l Lemmatizer, tagger lemma.Tagger) ([]string, error) {
	tagged, err := tagger.Tag(tokens)
	if err != nil {
		return nil, err
	}
	if len(tagged) != len(tokens) {
		return nil, fmt.Errorf("lemmatize with pos: tagger returned %d tags for %d tokens", len(tagged), len(tokens))
	}

	out := make([]string, len(tokens))
	for i, tok := range tokens {
		pos := tagged[i].POS
		if pos == lemma.Unknown {
			pos = lemma.Noun
		}
		out[i] = l.Lemma(tok, pos)
	}
	return out, nil
}

func filter(tokens []string, keep func(string) bool) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if keep(tok) {
			out = append(out, tok)
		}
	}
	return out
}
