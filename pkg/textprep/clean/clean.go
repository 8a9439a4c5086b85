// Package clean holds string-level normalizers: markup and URL stripping,
// whitespace and case normalization, and contraction expansion.
package clean

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	urlRe        = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)
	emailRe      = regexp.MustCompile(`\S+@\S+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean strips HTML tags, URLs and email addresses, then normalizes whitespace.
// It is the "clean" stage of the pipeline.
func Clean(text string) string {
	text = RemoveHTMLTags(text)
	text = RemoveURLsEmails(text)
	return NormalizeWhitespace(text)
}

// RemoveHTMLTags deletes every <...> substring.
func RemoveHTMLTags(text string) string {
	return htmlTagRe.ReplaceAllString(text, "")
}

// RemoveURLsEmails deletes http(s):// and www. prefixed tokens and anything
// shaped like user@host.
func RemoveURLsEmails(text string) string {
	text = urlRe.ReplaceAllString(text, "")
	return emailRe.ReplaceAllString(text, "")
}

// RemoveSpecialChars keeps letters, digits and whitespace.
func RemoveSpecialChars(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)
}

// NormalizeWhitespace collapses whitespace runs into a single space and trims
// both ends.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Lower lowercases text using the casing rules of the given language.
// A zero tag behaves like language.Und.
func Lower(text string, tag language.Tag) string {
	// Casers carry state, build one per call.
	return cases.Lower(tag).String(text)
}

// NormalizeCase applies NFKC compatibility normalization and lowercases the
// result, so full-width and ligature forms compare equal to their plain ones.
func NormalizeCase(text string) string {
	return Lower(norm.NFKC.String(text), language.Und)
}
