package lemma

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Tagged is a token with its Penn Treebank tag and coarse POS.
type Tagged struct {
	Token string
	Tag   string
	POS   POS
}

// Tagger assigns parts of speech to an already tokenized sequence. The result
// has one entry per input token, in order.
type Tagger interface {
	Tag(tokens []string) ([]Tagged, error)
}

// ProseTagger tags with the averaged perceptron model shipped in prose.
type ProseTagger struct {
	// Lookahead bounds how far alignment searches prose's own tokens for a
	// match before giving up on an input token. Zero means 4.
	Lookahead int
}

// NewProseTagger returns a tagger with default alignment.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag implements Tagger. prose tokenizes the joined text itself, so its tokens
// are aligned back to the input by exact text match; input tokens prose split
// differently get tag "" and POS Noun.
func (p *ProseTagger) Tag(tokens []string) ([]Tagged, error) {
	out := make([]Tagged, len(tokens))
	for i, t := range tokens {
		out[i] = Tagged{Token: t, POS: Noun}
	}
	if len(tokens) == 0 {
		return out, nil
	}

	doc, err := prose.NewDocument(
		strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("pos tagging: %w", err)
	}

	lookahead := p.Lookahead
	if lookahead <= 0 {
		lookahead = 4
	}

	tagged := doc.Tokens()
	next := 0
	for i, tok := range tokens {
		for k := next; k < len(tagged) && k < next+lookahead; k++ {
			if tagged[k].Text == tok {
				out[i].Tag = tagged[k].Tag
				out[i].POS = FromPennTag(tagged[k].Tag)
				next = k + 1
				break
			}
		}
	}
	return out, nil
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(tokens []string) ([]Tagged, error)

// Tag implements Tagger.
func (f TaggerFunc) Tag(tokens []string) ([]Tagged, error) { return f(tokens) }
