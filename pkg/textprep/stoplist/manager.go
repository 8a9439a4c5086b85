package stoplist

import (
	"sort"
	"strings"
)

// Manager is a mutable stoplist that can grow from corpus statistics.
// It is not safe for concurrent mutation.
type Manager struct {
	stops map[string]Reason
}

// Reason explains why a token is a stopword
type Reason struct {
	Builtin   bool    `json:"builtin,omitempty"`    // came from the initial list
	HighDF    bool    `json:"high_df,omitempty"`    // high document frequency
	DFPercent float64 `json:"df_percent,omitempty"` // share of documents containing the token
}

// NewManager creates a new stoplist manager seeded with initialStops.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = Reason{Builtin: true}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Add adds a token to the stoplist with a reason
func (m *Manager) Add(token string, reason Reason) {
	m.stops[strings.ToLower(token)] = reason
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// All returns all stopwords, sorted.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Snapshot freezes the current stoplist into an immutable Set.
func (m *Manager) Snapshot() *Set {
	return NewSet(m.All())
}

// Stats holds document-frequency statistics for one token.
type Stats struct {
	Token     string
	DF        int64
	DFPercent float64
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token  string  `json:"token"`
	Reason Reason  `json:"reason"`
	Score  float64 `json:"score"` // confidence score in [0,1]
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	DFPercent float64 // e.g., 80 - appears in 80% of documents
	MinDocs   int64   // ignore corpora smaller than this many documents per token
}

// DefaultThresholds returns sensible default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DFPercent: 80.0,
		MinDocs:   2,
	}
}

// SuggestCandidates returns tokens that are not yet stopwords and appear in
// more than DFPercent of documents, highest score first.
func (m *Manager) SuggestCandidates(stats []Stats, thresholds Thresholds) []Candidate {
	if thresholds.DFPercent == 0 {
		thresholds.DFPercent = DefaultThresholds().DFPercent
	}

	var candidates []Candidate
	for _, s := range stats {
		if m.IsStop(s.Token) {
			continue // already a stopword
		}
		if s.DF < thresholds.MinDocs {
			continue
		}
		if s.DFPercent <= thresholds.DFPercent {
			continue
		}
		candidates = append(candidates, Candidate{
			Token:  s.Token,
			Reason: Reason{HighDF: true, DFPercent: s.DFPercent},
			Score:  s.DFPercent / 100.0,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}
