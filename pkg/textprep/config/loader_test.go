package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
)

type stubDict map[string]string

func (d stubDict) Lemma(word string) string {
	if l, ok := d[strings.ToLower(word)]; ok {
		return l
	}
	return strings.ToLower(word)
}

func (d stubDict) Lemmas(word string) []string {
	if l, ok := d[strings.ToLower(word)]; ok {
		return []string{l}
	}
	return nil
}

func TestLoaderAllEmpty(t *testing.T) {
	loader := Loader{Dictionary: stubDict{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}

	if comp.Pipeline == nil {
		t.Fatal("Should have pipeline")
	}
	if comp.Config.Language != DefaultLanguage {
		t.Errorf("Expected default language, got %q", comp.Config.Language)
	}
	if comp.Steps != nil {
		t.Error("Steps should be nil to use defaults")
	}
	if comp.Contractions != nil || comp.Negation != nil || comp.Frequency != nil {
		t.Error("Optional stages should be disabled by default")
	}
	if !comp.Pipeline.Stopwords().Contains("the") {
		t.Error("Built-in English stopwords should be loaded")
	}
}

func TestLoaderUnsupportedLanguage(t *testing.T) {
	loader := Loader{Language: "klingon", Dictionary: stubDict{}}

	_, err := loader.Load()
	var cfgErr *internalerr.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
}

func TestLoaderUnsupportedLanguageWithStoplist(t *testing.T) {
	tmpDir := t.TempDir()
	slPath := filepath.Join(tmpDir, "stoplist.yaml")
	os.WriteFile(slPath, []byte("terms:\n  - der\n  - die\n"), 0644)

	loader := Loader{Language: "german", StoplistPath: slPath, Dictionary: stubDict{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Custom stoplist should cover any language: %v", err)
	}
	if !comp.Pipeline.Stopwords().Contains("der") {
		t.Error("Custom stoplist should be used")
	}
	if comp.Pipeline.Stopwords().Contains("the") {
		t.Error("Custom stoplist should replace the built-in list")
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	loader := Loader{StoplistPath: "/nonexistent/stoplist.yaml", Dictionary: stubDict{}}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}

func TestLoaderNonExistentConfig(t *testing.T) {
	loader := Loader{ConfigPath: "/nonexistent/pipeline.yaml", Dictionary: stubDict{}}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoaderMalformedStoplist(t *testing.T) {
	tmpDir := t.TempDir()
	slPath := filepath.Join(tmpDir, "bad.yaml")
	os.WriteFile(slPath, []byte("invalid: {yaml content\n"), 0644)

	loader := Loader{StoplistPath: slPath, Dictionary: stubDict{}}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on malformed YAML")
	}
}

func TestLoaderNonExistentExceptions(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "pipeline.yaml")
	os.WriteFile(cfgPath, []byte("exceptions: /nonexistent/exceptions.yaml\n"), 0644)

	loader := Loader{ConfigPath: cfgPath, Dictionary: stubDict{}}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent exceptions file")
	}
}

func TestLoaderInvalidFrequency(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "pipeline.yaml")
	os.WriteFile(cfgPath, []byte("frequency: {min: 5, max: 2}\n"), 0644)

	loader := Loader{ConfigPath: cfgPath, Dictionary: stubDict{}}

	_, err := loader.Load()
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoaderFullConfigApply(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "pipeline.yaml")
	content := `language: english
steps: [clean, lower, tokenize, remove_punct, remove_stopwords, lemmatize]
extra_stopwords: [said]
keep_stopwords: ["not"]
expand_contractions: true
negation:
  enabled: true
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	loader := Loader{ConfigPath: cfgPath, Dictionary: stubDict{"movies": "movie"}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	res := comp.Apply("<p>She said she doesn't like movies.</p>")
	// doesn't -> does not; "not" kept, "like" marked
	want := []string{"not", "NOT_like", "movie"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestLoaderStepsOverride(t *testing.T) {
	loader := Loader{Steps: []string{"tokenize"}, Dictionary: stubDict{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	res := comp.Apply("Hello, world!")
	want := []string{"Hello", ",", "world", "!"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestLoaderUnknownStepsOnly(t *testing.T) {
	loader := Loader{Steps: []string{"sparkle"}, Dictionary: stubDict{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	res := comp.Apply("Hello")
	if res.IsTokens() || res.Text() != "Hello" {
		t.Errorf("Unknown steps should run nothing, got %+v", res)
	}
}

func TestLoaderFrequencyFilter(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "pipeline.yaml")
	os.WriteFile(cfgPath, []byte("steps: [tokenize]\nfrequency: {min: 2, max: 3}\n"), 0644)

	loader := Loader{ConfigPath: cfgPath, Dictionary: stubDict{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	res := comp.Apply("a a b c c c")
	want := []string{"a", "a", "c", "c", "c"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestLoaderNegationKeepsCuesWithDefaultSteps(t *testing.T) {
	loader := Loader{Negate: true, Dictionary: stubDict{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	stops := comp.Pipeline.Stopwords()
	for _, cue := range []string{"not", "no", "nor", "don't", "didn't"} {
		if stops.Contains(cue) {
			t.Errorf("Negation cue %q should not be a stopword", cue)
		}
	}
	if !stops.Contains("the") {
		t.Error("Other stopwords should stay")
	}

	res := comp.Apply("I do not like this. I don't like that.")
	want := []string{"not", "NOT_like", ".", "n't", "NOT_like", "."}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestLoaderNegationWithExpansion(t *testing.T) {
	loader := Loader{Negate: true, ExpandContractions: true, Dictionary: stubDict{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	res := comp.Apply("I don't like that.")
	want := []string{"not", "NOT_like", "."}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestLoaderNegationCustomCues(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "pipeline.yaml")
	os.WriteFile(cfgPath, []byte("negation:\n  enabled: true\n  cues: [\"no\"]\n"), 0644)

	loader := Loader{ConfigPath: cfgPath, Dictionary: stubDict{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	stops := comp.Pipeline.Stopwords()
	if stops.Contains("no") {
		t.Error("Configured cue should not be a stopword")
	}
	if !stops.Contains("not") {
		t.Error("Words outside the configured cues stay stopwords")
	}
}

func TestLoaderNegativeFrequency(t *testing.T) {
	for _, f := range []Frequency{{Min: -1}, {Min: 1, Max: -2}} {
		loader := Loader{Frequency: &f, Dictionary: stubDict{}}
		if _, err := loader.Load(); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("Frequency %+v: expected ErrInvalidConfig, got %v", f, err)
		}
	}
}
