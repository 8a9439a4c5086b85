package corpus

import (
	"context"
	"crypto/rand"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/textprep/pkg/textprep/clean"
	"github.com/cognicore/textprep/pkg/textprep/pipeline"
	"github.com/cognicore/textprep/pkg/textprep/store"
)

// Processor turns one document into a pipeline result.
// *config.Components satisfies it.
type Processor interface {
	Apply(text string) pipeline.Result
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(text string) pipeline.Result

// Apply calls f(text).
func (f ProcessorFunc) Apply(text string) pipeline.Result { return f(text) }

// Output is the processed form of one Item.
type Output struct {
	ID     string          `json:"id"`
	Source string          `json:"source,omitempty"`
	Result pipeline.Result `json:"-"`
}

// Runner processes items concurrently and optionally persists them.
type Runner struct {
	Processor Processor
	Store     store.Store // optional
	Steps     []string    // recorded on stored docs
	Workers   int         // <= 0 means GOMAXPROCS

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewRunner creates a runner around p.
func NewRunner(p Processor, st store.Store, steps []string, workers int) *Runner {
	return &Runner{
		Processor: p,
		Store:     st,
		Steps:     steps,
		Workers:   workers,
	}
}

// Run processes items and returns outputs in input order. The first error
// cancels the remaining work.
func (r *Runner) Run(ctx context.Context, items []Item) ([]Output, error) {
	if r.Processor == nil {
		return nil, fmt.Errorf("corpus runner: no processor")
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outputs := make([]Output, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := r.processItem(gctx, items[i])
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (r *Runner) processItem(ctx context.Context, it Item) (Output, error) {
	if err := it.Validate(); err != nil {
		return Output{}, err
	}

	text := it.Text
	if strings.TrimSpace(text) == "" {
		extracted, err := clean.HTMLToText(strings.NewReader(it.HTML))
		if err != nil {
			return Output{}, fmt.Errorf("extract html: %w", err)
		}
		text = extracted
	}

	id := it.ID
	if id == "" {
		newID, err := r.newID()
		if err != nil {
			return Output{}, fmt.Errorf("generate id: %w", err)
		}
		id = newID
	}

	res := r.Processor.Apply(text)
	out := Output{ID: id, Source: it.Source, Result: res}

	if r.Store != nil {
		doc := store.Doc{
			ID:        id,
			Source:    it.Source,
			Steps:     r.Steps,
			Tokenized: res.IsTokens(),
			CreatedAt: time.Now(),
		}
		if res.IsTokens() {
			doc.Tokens = res.Tokens()
		} else {
			doc.Text = res.Text()
		}
		if err := r.Store.UpsertDoc(ctx, doc); err != nil {
			return Output{}, fmt.Errorf("store doc %s: %w", id, err)
		}
	}
	return out, nil
}

// newID returns a monotonic ULID. The entropy source is shared between
// workers and needs the lock.
func (r *Runner) newID() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entropy == nil {
		r.entropy = ulid.Monotonic(rand.Reader, 0)
	}
	id, err := ulid.New(ulid.Now(), r.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
