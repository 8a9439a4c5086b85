package corpus

import (
	"context"
	"fmt"

	"github.com/cognicore/textprep/pkg/textprep/stoplist"
	"github.com/cognicore/textprep/pkg/textprep/store"
)

// Report summarizes token usage across the stored corpus
type Report struct {
	Docs       int64                `json:"docs"`
	Tokens     []store.TokenCount   `json:"tokens"`
	Candidates []stoplist.Candidate `json:"stopword_candidates"`
}

// BuildReport reads the top tokens from st and suggests new stopwords: tokens
// not already in stops whose document frequency passes th. Candidates are
// drawn from the limit tokens with the highest document frequency.
func BuildReport(ctx context.Context, st store.Store, stops *stoplist.Set, limit int, th stoplist.Thresholds) (*Report, error) {
	docs, err := st.DocCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count docs: %w", err)
	}
	counts, err := st.TokenCounts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("token counts: %w", err)
	}

	rep := &Report{Docs: docs, Tokens: counts}
	if docs == 0 {
		return rep, nil
	}

	dfs, err := st.DocFrequencies(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("document frequencies: %w", err)
	}

	stats := make([]stoplist.Stats, 0, len(dfs))
	for _, tc := range dfs {
		stats = append(stats, stoplist.Stats{
			Token:     tc.Token,
			DF:        tc.Docs,
			DFPercent: float64(tc.Docs) / float64(docs) * 100,
		})
	}

	mgr := stoplist.NewManager(stops.All())
	rep.Candidates = mgr.SuggestCandidates(stats, th)
	return rep, nil
}
