package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skills-audit/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Postgres keeps every collection in a single documents table with a
// JSONB body, which reproduces the per-collection CRUD plus equality
// filter contract of the original document store. Each call runs under
// its own timeout; a timeout is reported as ErrUnavailable.
type Postgres struct {
	db           database.DB
	queryTimeout time.Duration
}

func NewPostgres(db database.DB, queryTimeout time.Duration) *Postgres {
	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}
	return &Postgres{db: db, queryTimeout: queryTimeout}
}

// EnsureSchema creates the documents table and its lookup index.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id UUID NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_data ON documents USING GIN (data)`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return wrapStoreErr(err)
		}
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, collection string, id uuid.UUID) (Document, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRow(ctx,
		`SELECT id, data, created_at, updated_at FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)

	var doc Document
	if err := row.Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, wrapStoreErr(err)
	}
	return doc, nil
}

func (s *Postgres) List(ctx context.Context, collection string) ([]Document, error) {
	return s.queryDocs(ctx,
		`SELECT id, data, created_at, updated_at FROM documents WHERE collection = $1`,
		collection,
	)
}

func (s *Postgres) Query(ctx context.Context, collection, field, value string) ([]Document, error) {
	return s.queryDocs(ctx,
		`SELECT id, data, created_at, updated_at FROM documents WHERE collection = $1 AND data->>$2 = $3`,
		collection, field, value,
	)
}

func (s *Postgres) Create(ctx context.Context, collection string, record any) (uuid.UUID, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(record)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode record: %w", err)
	}

	id := uuid.New()
	now := time.Now().UTC()

	body, err = stampDocument(body, id, now, now)
	if err != nil {
		return uuid.Nil, err
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		collection, id, body, now, now,
	)
	if err != nil {
		return uuid.Nil, wrapStoreErr(err)
	}
	return id, nil
}

func (s *Postgres) Update(ctx context.Context, collection string, id uuid.UUID, fields map[string]any) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()

	// The caller keeps ownership of fields; stamp a copy.
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = now

	patch, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	affected, err := s.db.Exec(ctx,
		`UPDATE documents SET data = data || $1::jsonb, updated_at = $2 WHERE collection = $3 AND id = $4`,
		patch, now, collection, id,
	)
	if err != nil {
		return wrapStoreErr(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	affected, err := s.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return wrapStoreErr(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) queryDocs(ctx context.Context, query string, args ...any) ([]Document, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, wrapStoreErr(err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(err)
	}
	return out, nil
}

func (s *Postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

func wrapStoreErr(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// stampDocument writes id and timestamps into the JSON body so the
// stored document is self-describing, mirroring the metadata columns.
func stampDocument(body []byte, id uuid.UUID, createdAt, updatedAt time.Time) ([]byte, error) {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	m["id"] = id
	m["createdAt"] = createdAt
	m["updatedAt"] = updatedAt
	return json.Marshal(m)
}
