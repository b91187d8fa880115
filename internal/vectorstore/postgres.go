package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store uses, so tests can substitute
// a pgxmock pool.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// PostgresStore implements Store over a pgvector-enabled database.
type PostgresStore struct {
	pool     Pool
	table    string
	embedder Embedder
	closeFn  func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString, table string, embedder Embedder) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, table: table, embedder: embedder, closeFn: pool.Close}, nil
}

// Migrate creates the documents table and the pgvector extension.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	migration := fmt.Sprintf(`
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS %s (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	metadata   JSONB,
	embedding  vector(1536),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`, pgx.Identifier{s.table}.Sanitize())
	if _, err := s.pool.Exec(ctx, migration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// SimilaritySearch embeds the query and returns the k nearest documents by
// cosine distance, in ascending distance order.
func (s *PostgresStore) SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error) {
	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, eris.Wrap(err, "postgres: embed query")
	}
	if len(vecs) != 1 {
		return nil, eris.Errorf("postgres: embedder returned %d vectors for one query", len(vecs))
	}

	sql := fmt.Sprintf(
		`SELECT id, content, metadata FROM %s ORDER BY embedding <=> $1 LIMIT $2`,
		pgx.Identifier{s.table}.Sanitize(),
	)
	rows, err := s.pool.Query(ctx, sql, encodeVector(vecs[0]), k)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: similarity search")
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			doc      Document
			metadata []byte
		)
		if err := rows.Scan(&doc.ID, &doc.Content, &metadata); err != nil {
			return nil, eris.Wrap(err, "postgres: scan document")
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal metadata")
			}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate rows")
	}

	return docs, nil
}

// AddDocuments embeds and inserts documents. Documents without IDs get one.
func (s *PostgresStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return eris.Wrap(err, "postgres: embed documents")
	}
	if len(vecs) != len(docs) {
		return eris.Errorf("postgres: embedder returned %d vectors for %d documents", len(vecs), len(docs))
	}

	sql := fmt.Sprintf(
		`INSERT INTO %s (id, content, metadata, embedding) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, metadata = EXCLUDED.metadata, embedding = EXCLUDED.embedding`,
		pgx.Identifier{s.table}.Sanitize(),
	)
	for i, d := range docs {
		id := d.ID
		if id == "" {
			id = uuid.New().String()
		}
		metadata, err := json.Marshal(d.Metadata)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal metadata")
		}
		if _, err := s.pool.Exec(ctx, sql, id, d.Content, metadata, encodeVector(vecs[i])); err != nil {
			return eris.Wrapf(err, "postgres: insert document %s", id)
		}
	}

	return nil
}

// encodeVector renders a vector in pgvector's text format, e.g. [0.1,0.2].
func encodeVector(vec []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
