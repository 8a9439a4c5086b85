package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/textprep/pkg/textprep/internalerr"
	"github.com/cognicore/textprep/pkg/textprep/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, unavailable(path, err)
	}

	// One connection: pragmas below are per connection, and SQLite
	// serializes writers anyway.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, unavailable(path, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, unavailable(path, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, unavailable(path, err)
	}

	return &sqliteStore{db: db}, nil
}

func unavailable(path string, err error) error {
	return fmt.Errorf("open sqlite %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	source TEXT,
	steps TEXT,
	tokenized INTEGER NOT NULL DEFAULT 0,
	text TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS docs_source ON docs(source);

CREATE TABLE IF NOT EXISTS doc_tokens (
	doc_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	token TEXT NOT NULL,
	PRIMARY KEY(doc_id, position),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS doc_tokens_token ON doc_tokens(token);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDoc inserts or replaces a document keyed by ID
func (s *sqliteStore) UpsertDoc(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return fmt.Errorf("upsert doc: empty id: %w", internalerr.ErrInvalidInput)
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	steps, err := json.Marshal(d.Steps)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (id, source, steps, tokenized, text, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	steps=excluded.steps,
	tokenized=excluded.tokenized,
	text=excluded.text,
	created_at=excluded.created_at;
`
	_, err = tx.ExecContext(
		ctx,
		stmt,
		d.ID,
		d.Source,
		string(steps),
		boolToInt(d.Tokenized),
		d.Text,
		d.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	if err := replaceDocTokens(ctx, tx, d.ID, d.Tokens); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceDocTokens(ctx context.Context, tx *sql.Tx, docID string, tokens []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_tokens WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO doc_tokens (doc_id, position, token) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, tok := range tokens {
		if _, err := stmt.ExecContext(ctx, docID, i, tok); err != nil {
			return err
		}
	}
	return nil
}

// GetDoc retrieves a document by ID
func (s *sqliteStore) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	return s.loadDoc(ctx, `SELECT id, source, steps, tokenized, text, created_at FROM docs WHERE id = ?`, id)
}

// GetDocBySource retrieves the newest document with the given source
func (s *sqliteStore) GetDocBySource(ctx context.Context, source string) (store.Doc, bool, error) {
	return s.loadDoc(ctx, `SELECT id, source, steps, tokenized, text, created_at FROM docs WHERE source = ? ORDER BY id DESC LIMIT 1`, source)
}

// ListDocs returns up to limit documents, newest first
func (s *sqliteStore) ListDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM docs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	docs := make([]store.Doc, 0, len(ids))
	for _, id := range ids {
		doc, found, err := s.GetDoc(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// DocCount returns the number of stored documents
func (s *sqliteStore) DocCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM docs`).Scan(&n)
	return n, err
}

// TokenCounts returns corpus-wide token counts, most frequent first
func (s *sqliteStore) TokenCounts(ctx context.Context, limit int) ([]store.TokenCount, error) {
	return s.tokenStats(ctx, "n DESC, df DESC", limit)
}

// DocFrequencies returns tokens ordered by how many documents contain them
func (s *sqliteStore) DocFrequencies(ctx context.Context, limit int) ([]store.TokenCount, error) {
	return s.tokenStats(ctx, "df DESC, n DESC", limit)
}

func (s *sqliteStore) tokenStats(ctx context.Context, order string, limit int) ([]store.TokenCount, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT token, COUNT(*) AS n, COUNT(DISTINCT doc_id) AS df
FROM doc_tokens
GROUP BY token
ORDER BY `+order+`, token ASC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []store.TokenCount
	for rows.Next() {
		var tc store.TokenCount
		if err := rows.Scan(&tc.Token, &tc.Count, &tc.Docs); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

func (s *sqliteStore) loadDoc(ctx context.Context, query string, arg string) (store.Doc, bool, error) {
	var (
		doc       store.Doc
		source    sql.NullString
		steps     sql.NullString
		text      sql.NullString
		tokenized int
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&doc.ID, &source, &steps, &tokenized, &text, &createdAt)
	if err == sql.ErrNoRows {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, err
	}

	doc.Source = source.String
	doc.Text = text.String
	doc.Tokenized = tokenized != 0
	if steps.Valid && steps.String != "" && steps.String != "null" {
		if err := json.Unmarshal([]byte(steps.String), &doc.Steps); err != nil {
			return store.Doc{}, false, fmt.Errorf("decode steps for %s: %w", doc.ID, err)
		}
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		doc.CreatedAt = ts
	}

	rows, err := s.db.QueryContext(ctx, `SELECT token FROM doc_tokens WHERE doc_id = ? ORDER BY position`, doc.ID)
	if err != nil {
		return store.Doc{}, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return store.Doc{}, false, err
		}
		doc.Tokens = append(doc.Tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return store.Doc{}, false, err
	}
	if doc.Tokenized && doc.Tokens == nil {
		doc.Tokens = []string{}
	}

	return doc, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
