package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textprep/pkg/textprep/stoplist"
)

// Pipeline is the YAML pipeline configuration.
type Pipeline struct {
	Language           string     `yaml:"language"`
	Steps              []string   `yaml:"steps"`
	StoplistPath       string     `yaml:"stoplist"`
	ExtraStopwords     []string   `yaml:"extra_stopwords"`
	KeepStopwords      []string   `yaml:"keep_stopwords"`
	ExceptionsPath     string     `yaml:"exceptions"`
	ContractionsPath   string     `yaml:"contractions"`
	ExpandContractions bool       `yaml:"expand_contractions"`
	POSTagging         bool       `yaml:"pos_tagging"`
	Negation           Negation   `yaml:"negation"`
	Frequency          *Frequency `yaml:"frequency"`
}

// Negation configures negation marking after the pipeline.
type Negation struct {
	Enabled bool     `yaml:"enabled"`
	Marker  string   `yaml:"marker"`
	Cues    []string `yaml:"cues"`
}

// Frequency bounds token counts kept after the pipeline. Max of 0 is unbounded.
type Frequency struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LoadPipeline loads a pipeline configuration from a YAML file.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Pipeline
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	terms, err := stoplist.ParseTerms(data)
	if err != nil {
		return nil, err
	}

	return &Stoplist{Terms: terms}, nil
}
