package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/store"
)

// Store is an in-memory implementation of store.Store for tests and dry runs.
type Store struct {
	mu   sync.RWMutex
	docs map[string]store.Doc
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		docs: make(map[string]store.Doc),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertDoc inserts or replaces a document, keyed by ID.
func (s *Store) UpsertDoc(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return fmt.Errorf("upsert doc: empty id: %w", internalerr.ErrInvalidInput)
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.ID] = copyDoc(d)
	return nil
}

// GetDoc returns a document by ID.
func (s *Store) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := s.docs[id]; ok {
		return copyDoc(doc), true, nil
	}
	return store.Doc{}, false, nil
}

// GetDocBySource returns the newest document with the given source.
func (s *Store) GetDocBySource(ctx context.Context, source string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best store.Doc
	found := false
	for _, doc := range s.docs {
		if doc.Source != source {
			continue
		}
		if !found || doc.ID > best.ID {
			best = doc
			found = true
		}
	}
	if !found {
		return store.Doc{}, false, nil
	}
	return copyDoc(best), true, nil
}

// ListDocs returns up to limit documents, newest first.
func (s *Store) ListDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	if len(ids) > limit {
		ids = ids[:limit]
	}

	docs := make([]store.Doc, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, copyDoc(s.docs[id]))
	}
	return docs, nil
}

// DocCount returns the number of stored documents.
func (s *Store) DocCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

// TokenCounts returns corpus-wide token counts, most frequent first.
func (s *Store) TokenCounts(ctx context.Context, limit int) ([]store.TokenCount, error) {
	return s.tokenStats(limit, func(a, b store.TokenCount) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Docs != b.Docs {
			return a.Docs > b.Docs
		}
		return a.Token < b.Token
	}), nil
}

// DocFrequencies returns tokens ordered by how many documents contain them.
func (s *Store) DocFrequencies(ctx context.Context, limit int) ([]store.TokenCount, error) {
	return s.tokenStats(limit, func(a, b store.TokenCount) bool {
		if a.Docs != b.Docs {
			return a.Docs > b.Docs
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Token < b.Token
	}), nil
}

func (s *Store) tokenStats(limit int, less func(a, b store.TokenCount) bool) []store.TokenCount {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	s.mu.RLock()
	counts := make(map[string]*store.TokenCount)
	for _, doc := range s.docs {
		seen := make(map[string]bool)
		for _, tok := range doc.Tokens {
			tc, ok := counts[tok]
			if !ok {
				tc = &store.TokenCount{Token: tok}
				counts[tok] = tc
			}
			tc.Count++
			if !seen[tok] {
				tc.Docs++
				seen[tok] = true
			}
		}
	}
	s.mu.RUnlock()

	result := make([]store.TokenCount, 0, len(counts))
	for _, tc := range counts {
		result = append(result, *tc)
	}
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func copyDoc(d store.Doc) store.Doc {
	d.Steps = append([]string(nil), d.Steps...)
	if d.Tokens != nil {
		d.Tokens = append([]string{}, d.Tokens...)
	}
	return d
}
