package stoplist

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
)

//go:embed english.yaml
var englishYAML []byte

var aliases = map[string]string{
	"en":  "english",
	"eng": "english",
}

var builtin = map[string][]byte{
	"english": englishYAML,
}

var registry = struct {
	mu   sync.RWMutex
	sets map[string]*Set
}{sets: make(map[string]*Set)}

// Load returns the stopword set for language ("english" or "en"). Sets are
// parsed once and cached for the life of the process. Unsupported languages
// yield an *internalerr.ConfigurationError.
func Load(language string) (*Set, error) {
	name := canonicalName(language)

	registry.mu.RLock()
	set, ok := registry.sets[name]
	registry.mu.RUnlock()
	if ok {
		return set, nil
	}

	data, ok := builtin[name]
	if !ok {
		return nil, internalerr.Missing("stopwords/" + language)
	}

	terms, err := ParseTerms(data)
	if err != nil {
		return nil, &internalerr.ConfigurationError{Resource: "stopwords/" + name, Err: err}
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	// Another caller may have won the race.
	if existing, ok := registry.sets[name]; ok {
		return existing, nil
	}
	set = NewSet(terms)
	registry.sets[name] = set
	return set, nil
}

// Register makes terms available under language, replacing any cached set.
func Register(language string, terms []string) *Set {
	set := NewSet(terms)
	registry.mu.Lock()
	registry.sets[canonicalName(language)] = set
	registry.mu.Unlock()
	return set
}

// Languages lists the built-in languages.
func Languages() []string {
	langs := make([]string, 0, len(builtin))
	for name := range builtin {
		langs = append(langs, name)
	}
	return langs
}

// ParseTerms decodes a YAML document with a top-level "terms" list.
func ParseTerms(data []byte) ([]string, error) {
	var doc struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse stoplist: %w", err)
	}
	return doc.Terms, nil
}

func canonicalName(language string) string {
	name := strings.ToLower(strings.TrimSpace(language))
	if alias, ok := aliases[name]; ok {
		return alias
	}
	return name
}
