// Package store persists preprocessed documents and corpus token counts.
package store

import (
	"context"
	"time"
)

// Store is the main interface for persisting preprocessing results
type Store interface {
	Close() error

	// Docs
	UpsertDoc(ctx context.Context, d Doc) error
	GetDoc(ctx context.Context, id string) (Doc, bool, error)
	GetDocBySource(ctx context.Context, source string) (Doc, bool, error)
	ListDocs(ctx context.Context, limit int) ([]Doc, error)
	DocCount(ctx context.Context) (int64, error)

	// Corpus statistics. TokenCounts ranks by total occurrences,
	// DocFrequencies by the number of documents containing the token.
	TokenCounts(ctx context.Context, limit int) ([]TokenCount, error)
	DocFrequencies(ctx context.Context, limit int) ([]TokenCount, error)
}

// Doc is one preprocessed document. Tokenized documents carry Tokens,
// the others carry Text.
type Doc struct {
	ID        string // ULID, sorts by creation time
	Source    string // caller supplied origin, e.g. a file name or URL
	Steps     []string
	Tokenized bool
	Text      string
	Tokens    []string
	CreatedAt time.Time
}

// TokenCount aggregates one token across the corpus.
type TokenCount struct {
	Token string `json:"token"`
	Count int64  `json:"count"` // total occurrences
	Docs  int64  `json:"docs"`  // documents containing the token
}

// DefaultListLimit applies when a non-positive limit is passed.
const DefaultListLimit = 100
