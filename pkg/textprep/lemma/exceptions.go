package lemma

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed exceptions.yaml
var exceptionsYAML []byte

// Exceptions maps irregular forms to their lemma, separately per POS.
//
// Expected YAML format:
//
//	verb:
//	  - canonical: be
//	    variants: [am, is, are, was, were]
//	adjective:
//	  - canonical: good
//	    variants: [better, best]
//
// Lookups are case-insensitive.
type Exceptions struct {
	// variant -> canonical, per POS
	reverseIndex map[POS]map[string]string
}

type exceptionGroup struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// NewExceptions creates an empty table.
func NewExceptions() *Exceptions {
	return &Exceptions{reverseIndex: make(map[POS]map[string]string)}
}

// DefaultExceptions returns a fresh copy of the built-in English table.
func DefaultExceptions() *Exceptions {
	ex, err := ParseExceptions(exceptionsYAML)
	if err != nil {
		panic(err)
	}
	return ex
}

// ParseExceptions decodes the YAML format described on Exceptions.
func ParseExceptions(data []byte) (*Exceptions, error) {
	var doc map[string][]exceptionGroup
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lemma exceptions: %w", err)
	}

	ex := NewExceptions()
	for name, groups := range doc {
		pos := ParsePOS(name)
		if pos == Unknown {
			return nil, fmt.Errorf("parse lemma exceptions: unknown part of speech %q", name)
		}
		for _, g := range groups {
			ex.Add(pos, g.Canonical, g.Variants)
		}
	}
	return ex, nil
}

// LoadExceptions reads an exceptions table from a YAML file.
func LoadExceptions(path string) (*Exceptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseExceptions(data)
}

// Add registers variants of canonical for pos. The canonical form maps to
// itself. Later groups override earlier ones for the same variant.
func (e *Exceptions) Add(pos POS, canonical string, variants []string) {
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	if canonical == "" {
		return
	}
	idx := e.reverseIndex[pos]
	if idx == nil {
		idx = make(map[string]string)
		e.reverseIndex[pos] = idx
	}
	idx[canonical] = canonical
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			idx[v] = canonical
		}
	}
}

// Merge copies every entry of other into e.
func (e *Exceptions) Merge(other *Exceptions) {
	if other == nil {
		return
	}
	for pos, idx := range other.reverseIndex {
		dst := e.reverseIndex[pos]
		if dst == nil {
			dst = make(map[string]string, len(idx))
			e.reverseIndex[pos] = dst
		}
		for v, c := range idx {
			dst[v] = c
		}
	}
}

// Lookup returns the lemma of word for pos if it is an irregular form.
func (e *Exceptions) Lookup(word string, pos POS) (string, bool) {
	if e == nil {
		return "", false
	}
	canonical, ok := e.reverseIndex[pos][strings.ToLower(word)]
	return canonical, ok
}

// Len returns the number of variant entries across all parts of speech.
func (e *Exceptions) Len() int {
	if e == nil {
		return 0
	}
	n := 0
	for _, idx := range e.reverseIndex {
		n += len(idx)
	}
	return n
}
