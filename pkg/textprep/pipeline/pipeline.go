// Package pipeline sequences the preprocessing steps. Callers choose which
// steps run; the pipeline always runs them in one fixed order:
//
//	clean -> lower -> tokenize -> remove_punct -> remove_stopwords -> stem -> lemmatize
package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/cognicore/textprep/pkg/textprep/clean"
	"github.com/cognicore/textprep/pkg/textprep/lemma"
	"github.com/cognicore/textprep/pkg/textprep/stem"
	"github.com/cognicore/textprep/pkg/textprep/stoplist"
	"github.com/cognicore/textprep/pkg/textprep/tokenize"
	"github.com/cognicore/textprep/pkg/textprep/transform"
)

// Components are the shared, read-only resources a Pipeline uses.
// Nil fields get defaults in New: a default tokenizer, an empty stopword set,
// the Porter stemmer and a lemmatizer without a dictionary.
type Components struct {
	Language   language.Tag
	Tokenizer  *tokenize.Tokenizer
	Stopwords  *stoplist.Set
	Stemmer    stem.Stemmer
	Lemmatizer transform.Lemmatizer
	// Tagger, when set, makes the lemmatize step POS-aware.
	Tagger lemma.Tagger
}

// Pipeline applies a catalog of text transformations in canonical order.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	lang       language.Tag
	tokenizer  *tokenize.Tokenizer
	stops      *stoplist.Set
	stemmer    stem.Stemmer
	lemmatizer transform.Lemmatizer
	tagger     lemma.Tagger
}

// New creates a pipeline from c.
func New(c Components) *Pipeline {
	p := &Pipeline{
		lang:       c.Language,
		tokenizer:  c.Tokenizer,
		stops:      c.Stopwords,
		stemmer:    c.Stemmer,
		lemmatizer: c.Lemmatizer,
		tagger:     c.Tagger,
	}
	if p.tokenizer == nil {
		p.tokenizer = tokenize.NewTokenizer()
	}
	if p.stops == nil {
		p.stops = stoplist.NewSet(nil)
	}
	if p.stemmer == nil {
		p.stemmer = stem.NewPorter()
	}
	if p.lemmatizer == nil {
		p.lemmatizer = lemma.New(nil, nil)
	}
	return p
}

// NewDefault builds a pipeline for language with the built-in stopword list,
// the Porter stemmer and the English lemma dictionary. An unsupported
// language returns an *internalerr.ConfigurationError.
func NewDefault(lang string) (*Pipeline, error) {
	stops, err := stoplist.Load(lang)
	if err != nil {
		return nil, err
	}
	lemmatizer, err := lemma.NewEnglish(nil)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	return New(Components{
		Language:   LanguageTag(lang),
		Stopwords:  stops,
		Lemmatizer: lemmatizer,
	}), nil
}

// Process runs the requested steps over text. With no steps, DefaultSteps
// apply. The order of steps is ignored and unknown steps are skipped. Token
// stages only run when tokenize was requested.
func (p *Pipeline) Process(text string, steps ...Step) Result {
	if len(steps) == 0 {
		steps = DefaultSteps()
	}
	enabled := stepSet(steps)

	var tokens []string
	tokenized := false

	for _, step := range canonicalOrder {
		if !enabled[step] {
			continue
		}
		if tokenStages[step] && !tokenized {
			continue
		}
		switch step {
		case StepClean:
			text = clean.Clean(text)
		case StepLower:
			text = clean.Lower(text, p.lang)
		case StepTokenize:
			tokens = p.tokenizer.Words(text)
			tokenized = true
		case StepRemovePunct:
			tokens = transform.RemovePunct(tokens)
		case StepRemoveStopwords:
			tokens = transform.RemoveStopwords(tokens, p.stops)
		case StepStem:
			tokens = transform.StemTokens(tokens, p.stemmer)
		case StepLemmatize:
			tokens = p.lemmatize(tokens)
		}
	}

	if tokenized {
		return TokensResult(tokens)
	}
	return TextResult(text)
}

// ProcessNames is Process for step names as strings, e.g. from a config file.
func (p *Pipeline) ProcessNames(text string, names []string) Result {
	if names == nil {
		return p.Process(text)
	}
	steps := ParseSteps(names)
	if len(steps) == 0 {
		// Every name was unknown: nothing to run.
		return TextResult(text)
	}
	return p.Process(text, steps...)
}

// Stopwords exposes the pipeline's stopword set.
func (p *Pipeline) Stopwords() *stoplist.Set { return p.stops }

func (p *Pipeline) lemmatize(tokens []string) []string {
	if p.tagger != nil {
		if out, err := transform.LemmatizeWithPOS(tokens, p.lemmatizer, p.tagger); err == nil {
			return out
		}
	}
	return transform.LemmatizeTokens(tokens, p.lemmatizer)
}

// LanguageTag maps a language name ("english", "en", "de") to a BCP 47 tag.
// Unrecognized names give language.Und.
func LanguageTag(name string) language.Tag {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "english":
		return language.English
	case "turkish":
		return language.Turkish
	case "german":
		return language.German
	case "french":
		return language.French
	case "spanish":
		return language.Spanish
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und
	}
	return tag
}
