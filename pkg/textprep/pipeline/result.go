package pipeline

import "strings"

// Result is either text or a token sequence, depending on whether the
// tokenize step ran. Check IsTokens before picking an accessor.
type Result struct {
	tokenized bool
	text      string
	tokens    []string
}

// TextResult wraps a string.
func TextResult(text string) Result {
	return Result{text: text}
}

// TokensResult wraps a token sequence. A nil slice becomes empty.
func TokensResult(tokens []string) Result {
	if tokens == nil {
		tokens = []string{}
	}
	return Result{tokenized: true, tokens: tokens}
}

// IsTokens reports whether the result holds tokens.
func (r Result) IsTokens() bool { return r.tokenized }

// Text returns the text of a text result, or "" for a token result.
func (r Result) Text() string { return r.text }

// Tokens returns the tokens of a token result, or nil for a text result.
func (r Result) Tokens() []string { return r.tokens }

// String renders either shape as text; tokens are joined by spaces.
func (r Result) String() string {
	if r.tokenized {
		return strings.Join(r.tokens, " ")
	}
	return r.text
}

// Empty reports whether the result has no content.
func (r Result) Empty() bool {
	if r.tokenized {
		return len(r.tokens) == 0
	}
	return r.text == ""
}
