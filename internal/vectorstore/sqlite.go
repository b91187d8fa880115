package vectorstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite. Embeddings are
// stored as little-endian float32 blobs and scored in process, which is
// fine at the corpus sizes a single-tenant deployment sees.
type SQLiteStore struct {
	db       *sql.DB
	table    string
	embedder Embedder
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn, table string, embedder Embedder) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, table: table, embedder: embedder}, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	migration := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %q (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	metadata   TEXT,
	embedding  BLOB NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`, s.table)
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return eris.Wrap(err, "sqlite: embed documents")
	}
	if len(vecs) != len(docs) {
		return eris.Errorf("sqlite: embedder returned %d vectors for %d documents", len(vecs), len(docs))
	}

	stmt := fmt.Sprintf(`INSERT INTO %q (id, content, metadata, embedding) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET content = excluded.content, metadata = excluded.metadata, embedding = excluded.embedding`, s.table)
	for i, d := range docs {
		id := d.ID
		if id == "" {
			id = uuid.New().String()
		}
		metadata, err := json.Marshal(d.Metadata)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal metadata")
		}
		if _, err := s.db.ExecContext(ctx, stmt, id, d.Content, string(metadata), encodeBlob(vecs[i])); err != nil {
			return eris.Wrapf(err, "sqlite: insert document %s", id)
		}
	}
	return nil
}

// SimilaritySearch embeds the query, scans every stored embedding, and
// returns the k documents with the highest cosine similarity.
func (s *SQLiteStore) SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error) {
	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: embed query")
	}
	if len(vecs) != 1 {
		return nil, eris.Errorf("sqlite: embedder returned %d vectors for one query", len(vecs))
	}
	qvec := vecs[0]

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, content, metadata, embedding FROM %q`, s.table))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: select documents")
	}
	defer rows.Close()

	type scored struct {
		doc   Document
		score float64
	}
	var candidates []scored
	for rows.Next() {
		var (
			doc      Document
			metadata sql.NullString
			blob     []byte
		)
		if err := rows.Scan(&doc.ID, &doc.Content, &metadata, &blob); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan document")
		}
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &doc.Metadata); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal metadata")
			}
		}
		vec, err := decodeBlob(blob)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: decode embedding for %s", doc.ID)
		}
		candidates = append(candidates, scored{doc: doc, score: cosineSimilarity(qvec, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate rows")
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	docs := make([]Document, len(candidates))
	for i, c := range candidates {
		docs[i] = c.doc
	}
	return docs, nil
}

func encodeBlob(vec []float32) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(vec)*4))
	for _, v := range vec {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func decodeBlob(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, eris.Errorf("embedding blob length %d is not a multiple of 4", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return -1
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return -1
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
