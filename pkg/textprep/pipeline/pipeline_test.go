package pipeline

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/lemma"
	"github.com/cognicore/textprep/pkg/textprep/stoplist"
)

type mapDict map[string]string

func (d mapDict) Lemma(word string) string {
	if l, ok := d[strings.ToLower(word)]; ok {
		return l
	}
	return strings.ToLower(word)
}

func (d mapDict) Lemmas(word string) []string {
	if l, ok := d[strings.ToLower(word)]; ok {
		return []string{l}
	}
	return nil
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	stops, err := stoplist.Load("english")
	if err != nil {
		t.Fatal(err)
	}
	return New(Components{
		Language:   LanguageTag("english"),
		Stopwords:  stops,
		Lemmatizer: lemma.New(mapDict{"cats": "cat", "ran": "run", "mice": "mouse"}, nil),
	})
}

func TestProcessTokenizeOnly(t *testing.T) {
	p := newTestPipeline(t)

	res := p.Process("Hello, world!", StepTokenize)
	if !res.IsTokens() {
		t.Fatal("Expected token result")
	}
	want := []string{"Hello", ",", "world", "!"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestProcessDefaultSteps(t *testing.T) {
	p := newTestPipeline(t)

	res := p.Process("<p>I won't go.</p>")
	want := []string{"wo", "n't", "go", "."}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestProcessTextOnly(t *testing.T) {
	p := newTestPipeline(t)

	res := p.Process("  <b>Hello</b>   WORLD http://x.io ", StepClean, StepLower)
	if res.IsTokens() {
		t.Fatal("Expected text result without tokenize")
	}
	if res.Text() != "hello world" {
		t.Errorf("got %q", res.Text())
	}
	if res.Tokens() != nil {
		t.Error("Text result should have nil tokens")
	}
}

func TestProcessOrderIgnored(t *testing.T) {
	p := newTestPipeline(t)
	text := "The Cats RAN away, quickly!"

	a := p.Process(text, StepLemmatize, StepRemovePunct, StepTokenize, StepLower)
	b := p.Process(text, StepLower, StepTokenize, StepRemovePunct, StepLemmatize)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Caller order changed the result: %v vs %v", a, b)
	}

	want := []string{"the", "cat", "run", "away", "quickly"}
	if !reflect.DeepEqual(a.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, a.Tokens())
	}
}

func TestProcessLowerRunsBeforeTokenize(t *testing.T) {
	p := newTestPipeline(t)

	// Even when listed after tokenize, lower applies to the text first.
	res := p.Process("ABC Def", StepTokenize, StepLower)
	want := []string{"abc", "def"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestProcessTokenStagesNeedTokenize(t *testing.T) {
	p := newTestPipeline(t)

	res := p.Process("The cats, the mice.", StepRemoveStopwords, StepRemovePunct, StepStem)
	if res.IsTokens() {
		t.Fatal("Token stages alone must not tokenize")
	}
	if res.Text() != "The cats, the mice." {
		t.Errorf("Text should be unchanged, got %q", res.Text())
	}
}

func TestProcessStem(t *testing.T) {
	p := newTestPipeline(t)

	res := p.Process("Running cats jumped", StepLower, StepTokenize, StepStem)
	want := []string{"run", "cat", "jump"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestProcessUnknownStepIgnored(t *testing.T) {
	p := newTestPipeline(t)

	res := p.Process("Hello, world!", StepTokenize, Step("sparkle"))
	if len(res.Tokens()) != 4 {
		t.Errorf("Unknown step should be ignored, got %v", res.Tokens())
	}

	res = p.Process("Hello", Step("sparkle"))
	if res.IsTokens() || res.Text() != "Hello" {
		t.Errorf("Only unknown steps should leave text untouched, got %+v", res)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	p := newTestPipeline(t)

	res := p.Process("")
	if !res.IsTokens() || !res.Empty() || res.Tokens() == nil {
		t.Errorf("Empty input should give an empty token sequence, got %#v", res)
	}

	res = p.Process("   \t", StepClean)
	if res.IsTokens() || res.Text() != "" {
		t.Errorf("Whitespace-only input should clean to empty text, got %#v", res)
	}
}

func TestProcessNames(t *testing.T) {
	p := newTestPipeline(t)

	res := p.ProcessNames("Hello, world!", []string{" Tokenize ", "remove_punct", "bogus"})
	want := []string{"Hello", "world"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}

	res = p.ProcessNames("Hello", []string{"bogus"})
	if res.IsTokens() || res.Text() != "Hello" {
		t.Errorf("All-unknown names should run nothing, got %+v", res)
	}

	res = p.ProcessNames("The cats", nil)
	if !reflect.DeepEqual(res.Tokens(), []string{"cat"}) {
		t.Errorf("Nil names should use defaults, got %v", res.Tokens())
	}
}

func TestProcessWithTagger(t *testing.T) {
	stops := stoplist.NewSet(nil)
	calls := 0
	p := New(Components{
		Stopwords:  stops,
		Lemmatizer: lemma.New(nil, nil),
		Tagger: lemma.TaggerFunc(func(tokens []string) ([]lemma.Tagged, error) {
			calls++
			out := make([]lemma.Tagged, len(tokens))
			for i, tok := range tokens {
				out[i] = lemma.Tagged{Token: tok, POS: lemma.Verb}
			}
			return out, nil
		}),
	})

	res := p.Process("was went", StepTokenize, StepLemmatize)
	want := []string{"be", "go"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
	if calls != 1 {
		t.Errorf("Tagger should run once, ran %d times", calls)
	}
}

func TestProcessTaggerFailureFallsBack(t *testing.T) {
	p := New(Components{
		Lemmatizer: lemma.New(mapDict{"cats": "cat"}, nil),
		Tagger: lemma.TaggerFunc(func([]string) ([]lemma.Tagged, error) {
			return nil, errors.New("model unavailable")
		}),
	})

	res := p.Process("cats", StepTokenize, StepLemmatize)
	if !reflect.DeepEqual(res.Tokens(), []string{"cat"}) {
		t.Errorf("Expected plain lemmatization fallback, got %v", res.Tokens())
	}
}

func TestProcessConcurrent(t *testing.T) {
	p := newTestPipeline(t)
	want := p.Process("The cats ran home!")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := p.Process("The cats ran home!"); !reflect.DeepEqual(got, want) {
					t.Errorf("Concurrent result differs: %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewZeroComponents(t *testing.T) {
	p := New(Components{})

	res := p.Process("The Cats")
	want := []string{"the", "cats"}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestNewDefaultUnsupportedLanguage(t *testing.T) {
	_, err := NewDefault("klingon")

	var cfgErr *internalerr.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
}

// Golden output with the real English dictionary.
func TestNewDefaultGolden(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the full lemma dictionary")
	}

	p, err := NewDefault("english")
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}

	res := p.Process("<p>I won't go.</p>")
	want := []string{"wo", "n't", "go", "."}
	if !reflect.DeepEqual(res.Tokens(), want) {
		t.Errorf("Expected %v, got %v", want, res.Tokens())
	}
}

func TestLanguageTag(t *testing.T) {
	if LanguageTag("english").String() != "en" {
		t.Error("english should map to en")
	}
	if LanguageTag("de").String() != "de" {
		t.Error("de should parse")
	}
	if LanguageTag("not a language") != LanguageTag("") {
		t.Error("Garbage should map to Und")
	}
}
