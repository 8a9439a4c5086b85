package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/cognicore/textprep/internal/corpus"
	"github.com/cognicore/textprep/pkg/textprep/config"
	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/lemma"
	"github.com/cognicore/textprep/pkg/textprep/pipeline"
	"github.com/cognicore/textprep/pkg/textprep/stoplist"
	"github.com/cognicore/textprep/pkg/textprep/store"
	"github.com/cognicore/textprep/pkg/textprep/store/sqlite"
)

type options struct {
	text       string
	input      string
	configPath string
	steps      string
	lang       string
	dbPath     string
	workers    int
	expand     bool
	negate     bool
	minFreq    int
	maxFreq    int
	report     bool
	reportTop  int

	dict lemma.Dictionary // test override
}

func main() {
	var opts options
	flag.StringVar(&opts.text, "text", "", "Text to process (one-shot mode)")
	flag.StringVar(&opts.input, "input", "", "JSONL file of documents ({id, source, text|html})")
	flag.StringVar(&opts.configPath, "config", "", "Pipeline YAML config (optional)")
	flag.StringVar(&opts.steps, "steps", "", "Comma separated steps (default: clean,lower,tokenize,remove_stopwords,lemmatize)")
	flag.StringVar(&opts.lang, "lang", "", "Stopword language (default: english)")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite database to store results (optional)")
	flag.IntVar(&opts.workers, "workers", 0, "Concurrent workers for -input (default: GOMAXPROCS)")
	flag.BoolVar(&opts.expand, "expand", false, "Expand contractions before processing")
	flag.BoolVar(&opts.negate, "negate", false, "Mark negated tokens with NOT_")
	flag.IntVar(&opts.minFreq, "min-freq", 0, "Drop tokens occurring fewer times per document")
	flag.IntVar(&opts.maxFreq, "max-freq", 0, "Drop tokens occurring more times per document (0 = no limit)")
	flag.BoolVar(&opts.report, "report", false, "Print corpus token report from -db")
	flag.IntVar(&opts.reportTop, "top", 50, "Tokens to include in -report")
	flag.Parse()

	if opts.text == "" && opts.input == "" && !opts.report {
		if flag.NArg() > 0 {
			opts.text = strings.Join(flag.Args(), " ")
		} else {
			log.Fatal("--text, --input or --report required")
		}
	}
	if opts.report && opts.dbPath == "" {
		log.Fatal("--report requires --db")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options, w io.Writer) error {
	var st store.Store
	if opts.dbPath != "" {
		s, err := sqlite.OpenSQLite(ctx, opts.dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer s.Close()
		st = s
	}

	if opts.text != "" || opts.input != "" {
		comp, err := buildComponents(opts)
		if err != nil {
			return err
		}

		if opts.text != "" {
			res := comp.Apply(opts.text)
			if err := writeRecord(w, "", "", res); err != nil {
				return err
			}
		}

		if opts.input != "" {
			items, err := corpus.LoadFromJSONL(opts.input)
			if err != nil {
				return err
			}
			log.Printf("Processing %d documents", len(items))

			runner := corpus.NewRunner(comp, st, pipeline.Strings(effectiveSteps(comp)), opts.workers)
			outputs, err := runner.Run(ctx, items)
			if err != nil {
				return fmt.Errorf("process %s: %w", opts.input, err)
			}
			for _, out := range outputs {
				if err := writeRecord(w, out.ID, out.Source, out.Result); err != nil {
					return err
				}
			}
		}
	}

	if opts.report {
		if st == nil {
			return errors.New("report requires a database")
		}
		comp, err := buildComponents(opts)
		if err != nil {
			return err
		}
		rep, err := corpus.BuildReport(ctx, st, comp.Pipeline.Stopwords(), opts.reportTop, stoplist.DefaultThresholds())
		if err != nil {
			return err
		}
		return json.NewEncoder(w).Encode(rep)
	}
	return nil
}

// buildComponents loads the config file and applies flag overrides.
func buildComponents(opts options) (*config.Components, error) {
	if opts.minFreq < 0 || opts.maxFreq < 0 {
		return nil, fmt.Errorf("invalid frequency bounds [%d, %d]: %w", opts.minFreq, opts.maxFreq, internalerr.ErrInvalidConfig)
	}

	loader := &config.Loader{
		ConfigPath:         opts.configPath,
		Language:           opts.lang,
		ExpandContractions: opts.expand,
		Negate:             opts.negate,
		Dictionary:         opts.dict,
	}
	if opts.steps != "" {
		loader.Steps = strings.Split(opts.steps, ",")
	}
	if opts.minFreq > 0 || opts.maxFreq > 0 {
		loader.Frequency = &config.Frequency{Min: opts.minFreq, Max: opts.maxFreq}
	}

	return loader.Load()
}

func effectiveSteps(comp *config.Components) []pipeline.Step {
	if comp.Steps != nil {
		return comp.Steps
	}
	return pipeline.DefaultSteps()
}

func writeRecord(w io.Writer, id, source string, res pipeline.Result) error {
	rec := map[string]any{}
	if id != "" {
		rec["id"] = id
	}
	if source != "" {
		rec["source"] = source
	}
	if res.IsTokens() {
		tokens := res.Tokens()
		if tokens == nil {
			tokens = []string{}
		}
		rec["tokens"] = tokens
	} else {
		rec["text"] = res.Text()
	}
	return json.NewEncoder(w).Encode(rec)
}
