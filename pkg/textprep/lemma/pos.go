package lemma

import "strings"

// POS is a coarse part-of-speech category used to pick lemmatization rules.
type POS int

const (
	Unknown POS = iota
	Noun
	Verb
	Adjective
	Adverb
)

func (p POS) String() string {
	switch p {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case Adverb:
		return "adverb"
	}
	return "unknown"
}

// ParsePOS accepts the names returned by String plus the one-letter WordNet
// codes n, v, a, r.
func ParsePOS(s string) POS {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "noun", "n":
		return Noun
	case "verb", "v":
		return Verb
	case "adjective", "adj", "a", "s":
		return Adjective
	case "adverb", "adv", "r":
		return Adverb
	}
	return Unknown
}

// FromPennTag maps a Penn Treebank tag to a POS. Tags outside the J/V/N/R
// families map to Noun, so pronouns, determiners and symbols get noun rules.
// That default can mislemmatize words whose tag was wrong; it matches the
// usual WordNet lemmatizer convention.
func FromPennTag(tag string) POS {
	switch {
	case strings.HasPrefix(tag, "J"):
		return Adjective
	case strings.HasPrefix(tag, "V"):
		return Verb
	case strings.HasPrefix(tag, "N"):
		return Noun
	case strings.HasPrefix(tag, "R"):
		return Adverb
	}
	return Noun
}
