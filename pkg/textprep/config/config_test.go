package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStoplist(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "stoplist.yaml")

	content := `terms:
  - the
  - a
  - and
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}

	if len(sl.Terms) != 3 {
		t.Errorf("Expected 3 terms, got %d", len(sl.Terms))
	}

	expected := map[string]bool{"the": true, "a": true, "and": true}
	for _, term := range sl.Terms {
		if !expected[term] {
			t.Errorf("Unexpected term: %s", term)
		}
	}
}

func TestLoadPipeline(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "pipeline.yaml")

	content := `language: english
steps: [clean, lower, tokenize, remove_punct]
extra_stopwords: [said]
keep_stopwords: ["not", "no"]
expand_contractions: true
negation:
  enabled: true
  marker: NEG_
frequency:
  min: 2
  max: 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPipeline(path)
	if err != nil {
		t.Fatalf("Failed to load pipeline: %v", err)
	}

	if cfg.Language != "english" {
		t.Errorf("Expected english, got %q", cfg.Language)
	}
	if len(cfg.Steps) != 4 {
		t.Errorf("Expected 4 steps, got %d", len(cfg.Steps))
	}
	if !cfg.ExpandContractions {
		t.Error("expand_contractions should be true")
	}
	if !cfg.Negation.Enabled || cfg.Negation.Marker != "NEG_" {
		t.Errorf("Unexpected negation config %+v", cfg.Negation)
	}
	if cfg.Frequency == nil || cfg.Frequency.Min != 2 {
		t.Errorf("Unexpected frequency config %+v", cfg.Frequency)
	}
	if len(cfg.KeepStopwords) != 2 {
		t.Errorf("Expected 2 keep_stopwords, got %v", cfg.KeepStopwords)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	if _, err := LoadStoplist("/nonexistent/path.yaml"); err == nil {
		t.Error("Should error on non-existent file")
	}

	if _, err := LoadPipeline("/nonexistent/path.yaml"); err == nil {
		t.Error("Should error on non-existent file")
	}
}

func TestLoadEmptyFiles(t *testing.T) {
	tmpDir := t.TempDir()

	slPath := filepath.Join(tmpDir, "empty_stoplist.yaml")
	os.WriteFile(slPath, []byte("terms: []"), 0644)
	sl, err := LoadStoplist(slPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(sl.Terms) != 0 {
		t.Error("Empty stoplist should have no terms")
	}

	cfgPath := filepath.Join(tmpDir, "empty.yaml")
	os.WriteFile(cfgPath, []byte(""), 0644)
	cfg, err := LoadPipeline(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Steps != nil {
		t.Error("Empty config should leave steps unset")
	}
}

func TestLoadPipelineMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("steps: [unclosed\n"), 0644)

	if _, err := LoadPipeline(path); err == nil {
		t.Error("Should error on malformed YAML")
	}
}
