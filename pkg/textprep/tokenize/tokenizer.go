// Package tokenize splits text into word and sentence tokens.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Punctuation is the ASCII punctuation set; a token made of exactly one of
// these characters counts as punctuation.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// clitics split off the end of a word, longest first.
var clitics = []string{"n't", "'ll", "'re", "'ve", "'s", "'m", "'d"}

// Tokenizer splits text into words with punctuation as separate tokens.
// The zero value is ready to use and safe for concurrent use.
type Tokenizer struct {
	// KeepClitics disables splitting of English clitics ("won't" stays whole).
	KeepClitics bool
}

// NewTokenizer creates a tokenizer with default rules.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Words splits text into word tokens. Leading and trailing punctuation
// become their own tokens and clitics are split Treebank style:
//
//	"Hello, world!" -> [Hello , world !]
//	"I won't"       -> [I wo n't]
//	"Wait..."       -> [Wait ...]
//
// A run of periods stays one token. The final period of an abbreviation made
// of single letters ("U.S.", "e.g.") stays attached. Commas and semicolons
// between two letters split the word ("a,b" -> [a , b]); between digits they
// are kept ("1,000").
func (t *Tokenizer) Words(text string) []string {
	tokens := []string{}
	for _, field := range strings.Fields(text) {
		runes := []rune(field)
		seg := 0
		for i := 1; i < len(runes)-1; i++ {
			if (runes[i] == ',' || runes[i] == ';') && unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1]) {
				tokens = t.appendChunk(tokens, runes[seg:i])
				tokens = append(tokens, string(runes[i]))
				seg = i + 1
			}
		}
		tokens = t.appendChunk(tokens, runes[seg:])
	}
	return tokens
}

func (t *Tokenizer) appendChunk(tokens []string, runes []rune) []string {
	start, end := 0, len(runes)

	// Leading punctuation
	for start < end && isPunctRune(runes[start]) {
		n := 1
		if runes[start] == '.' {
			n = dotRun(runes[start:end], true)
		}
		tokens = append(tokens, string(runes[start:start+n]))
		start += n
	}

	// Trailing punctuation, collected right to left
	var trail []string
	for end > start && isPunctRune(runes[end-1]) {
		n := 1
		if runes[end-1] == '.' {
			n = dotRun(runes[start:end], false)
			if n == 1 && isAbbreviation(runes[start:end]) {
				break
			}
		}
		trail = append(trail, string(runes[end-n:end]))
		end -= n
	}

	if end > start {
		tokens = append(tokens, t.splitClitic(string(runes[start:end]))...)
	}

	for i := len(trail) - 1; i >= 0; i-- {
		tokens = append(tokens, trail[i])
	}
	return tokens
}

// dotRun counts consecutive periods at the front (or back) of runes.
func dotRun(runes []rune, front bool) int {
	n := 0
	for n < len(runes) {
		r := runes[n]
		if !front {
			r = runes[len(runes)-1-n]
		}
		if r != '.' {
			break
		}
		n++
	}
	return n
}

// isAbbreviation reports whether runes is single letters each followed by a
// period, like "U.S." or "e.g.".
func isAbbreviation(runes []rune) bool {
	if len(runes) < 4 || len(runes)%2 != 0 {
		return false
	}
	for i := 0; i < len(runes); i += 2 {
		if !unicode.IsLetter(runes[i]) || runes[i+1] != '.' {
			return false
		}
	}
	return true
}

func (t *Tokenizer) splitClitic(word string) []string {
	if t.KeepClitics {
		return []string{word}
	}
	norm := strings.ReplaceAll(word, "’", "'")
	lower := strings.ToLower(norm)
	for _, c := range clitics {
		if len(lower) > len(c) && strings.HasSuffix(lower, c) {
			cut := len(norm) - len(c)
			return []string{norm[:cut], norm[cut:]}
		}
	}
	return []string{word}
}

// Sentences splits text after runs of '.', '!' or '?' that are followed by
// whitespace or the end of the text. Sentences are trimmed; empty ones dropped.
func (t *Tokenizer) Sentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, w := 0, 0; i < len(text); i += w {
		r, width := utf8.DecodeRuneInString(text[i:])
		w = width
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + w
		// Absorb the rest of a terminator run ("?!", "...").
		for next < len(text) && strings.IndexByte(".!?", text[next]) >= 0 {
			current.WriteByte(text[next])
			next++
		}
		w = next - i
		if next == len(text) {
			break
		}
		if nr, _ := utf8.DecodeRuneInString(text[next:]); unicode.IsSpace(nr) {
			flush()
		}
	}
	flush()

	return sentences
}

// IsPunct reports whether token is exactly one ASCII punctuation character.
func IsPunct(token string) bool {
	return len(token) == 1 && strings.IndexByte(Punctuation, token[0]) >= 0
}

func isPunctRune(r rune) bool {
	if r < utf8.RuneSelf {
		return strings.IndexByte(Punctuation, byte(r)) >= 0
	}
	return unicode.IsPunct(r) && r != '’'
}
