// Package config loads YAML configuration and builds pipeline components.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/textprep/pkg/textprep/clean"
	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/lemma"
	"github.com/cognicore/textprep/pkg/textprep/pipeline"
	"github.com/cognicore/textprep/pkg/textprep/stoplist"
	"github.com/cognicore/textprep/pkg/textprep/transform"
)

// DefaultLanguage is used when the configuration names none.
const DefaultLanguage = "english"

// Loader loads configuration files and constructs components.
type Loader struct {
	// ConfigPath is an optional pipeline YAML file. Fields below override it
	// when non-empty.
	ConfigPath   string
	Language     string
	StoplistPath string
	Steps        []string

	// Switches that turn on optional stages regardless of the config file.
	ExpandContractions bool
	Negate             bool
	Frequency          *Frequency

	// Dictionary overrides the English lemma dictionary, mostly for tests.
	Dictionary lemma.Dictionary
	// Tagger overrides the POS tagger used when pos_tagging is on.
	Tagger lemma.Tagger
}

// Components holds all loaded configuration components
type Components struct {
	Config       Pipeline
	Pipeline     *pipeline.Pipeline
	Steps        []pipeline.Step // nil means pipeline defaults
	Contractions *clean.Contractions
	Negation     *transform.NegationOptions // nil when disabled
	Frequency    *Frequency                 // nil when disabled
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := Pipeline{}
	if l.ConfigPath != "" {
		loaded, err := LoadPipeline(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load pipeline config: %w", err)
		}
		cfg = *loaded
	}
	if l.Language != "" {
		cfg.Language = l.Language
	}
	if l.StoplistPath != "" {
		cfg.StoplistPath = l.StoplistPath
	}
	if l.Steps != nil {
		cfg.Steps = l.Steps
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if l.ExpandContractions {
		cfg.ExpandContractions = true
	}
	if l.Negate {
		cfg.Negation.Enabled = true
	}
	if l.Frequency != nil {
		f := *l.Frequency
		cfg.Frequency = &f
	}

	if f := cfg.Frequency; f != nil {
		if f.Min < 0 || f.Max < 0 || (f.Max > 0 && f.Max < f.Min) {
			return nil, fmt.Errorf("frequency bounds [%d, %d]: %w", f.Min, f.Max, internalerr.ErrInvalidConfig)
		}
	}

	comp := &Components{Config: cfg}

	// Stopwords: a stoplist file replaces the built-in list for the language.
	var stops *stoplist.Set
	if cfg.StoplistPath != "" {
		sl, err := LoadStoplist(cfg.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = stoplist.NewSet(sl.Terms)
	} else {
		set, err := stoplist.Load(cfg.Language)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = set
	}
	stops = stops.With(cfg.ExtraStopwords).Without(cfg.KeepStopwords)

	if cfg.Negation.Enabled {
		comp.Negation = &transform.NegationOptions{
			Cues:   cfg.Negation.Cues,
			Marker: cfg.Negation.Marker,
		}
		// Negation runs after the pipeline and needs its cues to survive
		// remove_stopwords.
		stops = withoutNegationCues(stops, cfg.Negation.Cues)
	}

	// Lemma exceptions
	exceptions := lemma.DefaultExceptions()
	if cfg.ExceptionsPath != "" {
		custom, err := lemma.LoadExceptions(cfg.ExceptionsPath)
		if err != nil {
			return nil, fmt.Errorf("load lemma exceptions: %w", err)
		}
		exceptions.Merge(custom)
	}

	var lemmatizer *lemma.Lemmatizer
	if l.Dictionary != nil {
		lemmatizer = lemma.New(l.Dictionary, exceptions)
	} else {
		built, err := lemma.NewEnglish(exceptions)
		if err != nil {
			return nil, &internalerr.ConfigurationError{Resource: "lemma/english", Err: err}
		}
		lemmatizer = built
	}

	var tagger lemma.Tagger
	if cfg.POSTagging {
		tagger = l.Tagger
		if tagger == nil {
			tagger = lemma.NewProseTagger()
		}
	}

	comp.Pipeline = pipeline.New(pipeline.Components{
		Language:   pipeline.LanguageTag(cfg.Language),
		Stopwords:  stops,
		Lemmatizer: lemmatizer,
		Tagger:     tagger,
	})

	if cfg.Steps != nil {
		comp.Steps = pipeline.ParseSteps(cfg.Steps)
	}

	// Contractions
	if cfg.ExpandContractions {
		comp.Contractions = clean.DefaultContractions()
		if cfg.ContractionsPath != "" {
			data, err := os.ReadFile(cfg.ContractionsPath)
			if err != nil {
				return nil, fmt.Errorf("load contractions: %w", err)
			}
			c, err := clean.ParseContractions(data)
			if err != nil {
				return nil, fmt.Errorf("load contractions: %w", err)
			}
			comp.Contractions = c
		}
	}

	if cfg.Frequency != nil {
		f := *cfg.Frequency
		comp.Frequency = &f
	}

	return comp, nil
}

// withoutNegationCues removes cues, or the default cues when none are given,
// from stops together with every stopword ending in "n't".
func withoutNegationCues(stops *stoplist.Set, cues []string) *stoplist.Set {
	if len(cues) == 0 {
		cues = transform.DefaultNegationCues()
	}
	keep := append([]string(nil), cues...)
	for _, w := range stops.All() {
		if strings.HasSuffix(w, "n't") {
			keep = append(keep, w)
		}
	}
	return stops.Without(keep)
}

// Apply runs the configured pipeline plus the optional post-processing:
// contraction expansion before the steps, then negation marking and the
// frequency filter on token results.
func (c *Components) Apply(text string) pipeline.Result {
	if c.Contractions != nil {
		text = c.Contractions.Expand(text)
	}

	var res pipeline.Result
	if c.Steps != nil {
		if len(c.Steps) == 0 {
			return pipeline.TextResult(text)
		}
		res = c.Pipeline.Process(text, c.Steps...)
	} else {
		res = c.Pipeline.Process(text)
	}

	if !res.IsTokens() {
		return res
	}
	tokens := res.Tokens()
	if c.Negation != nil {
		tokens = transform.MarkNegations(tokens, *c.Negation)
	}
	if c.Frequency != nil {
		tokens = transform.FilterByFrequency(tokens, c.Frequency.Min, c.Frequency.Max)
	}
	return pipeline.TokensResult(tokens)
}
