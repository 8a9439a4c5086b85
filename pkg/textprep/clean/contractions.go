package clean

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed contractions.yaml
var contractionsYAML []byte

// Contractions expands English contractions such as "won't" -> "will not".
type Contractions struct {
	table map[string]string
	re    *regexp.Regexp
}

var defaultContractions = mustLoadContractions(contractionsYAML)

// DefaultContractions returns the built-in English table.
func DefaultContractions() *Contractions {
	return defaultContractions
}

// ParseContractions reads a YAML document with a top-level "contractions"
// mapping.
func ParseContractions(data []byte) (*Contractions, error) {
	var doc struct {
		Contractions map[string]string `yaml:"contractions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse contractions: %w", err)
	}
	return NewContractions(doc.Contractions), nil
}

// NewContractions builds an expander from a contraction -> expansion map.
// Keys are matched case-insensitively.
func NewContractions(table map[string]string) *Contractions {
	norm := make(map[string]string, len(table))
	keys := make([]string, 0, len(table))
	for k, v := range table {
		k = strings.ToLower(straightenApostrophes(k))
		if k == "" {
			continue
		}
		if _, dup := norm[k]; !dup {
			keys = append(keys, k)
		}
		norm[k] = v
	}
	if len(keys) == 0 {
		return &Contractions{table: norm}
	}

	// Longest first so "can't've" wins over "can't".
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	re := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	return &Contractions{table: norm, re: re}
}

// Expand replaces every known contraction in text.
func (c *Contractions) Expand(text string) string {
	if c.re == nil {
		return text
	}
	text = straightenApostrophes(text)
	return c.re.ReplaceAllStringFunc(text, func(match string) string {
		expansion, ok := c.table[strings.ToLower(match)]
		if !ok {
			return match
		}
		first, _ := utf8.DecodeRuneInString(match)
		if unicode.IsUpper(first) {
			return capitalize(expansion)
		}
		return expansion
	})
}

// Len reports how many contractions the table knows.
func (c *Contractions) Len() int { return len(c.table) }

// ExpandContractions expands contractions using the built-in English table.
func ExpandContractions(text string) string {
	return defaultContractions.Expand(text)
}

func straightenApostrophes(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func mustLoadContractions(data []byte) *Contractions {
	c, err := ParseContractions(data)
	if err != nil {
		panic(err)
	}
	return c
}
