// Package sqlite backs the store contract with a local SQLite file.
// Documents are stored as JSON rows so the same dashboard runs against a
// seeded local database in development and in tests. Timestamps survive
// only as strings here, which exercises the normalizer's string path.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jishinalert/dashboard/internal/logger"
	"github.com/jishinalert/dashboard/internal/store"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       TEXT NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection);
`

// Store is the SQLite-backed document store.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (and if necessary initializes) the document database at path.
func Open(path string) (*Store, error) {
	log := logger.Default().WithPrefix("sqlite")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening document database: %s", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite best practice for single writer

	if _, err := db.Exec(schema); err != nil {
		log.Error("failed to initialize schema: %v", err)
		return nil, err
	}

	log.Info("document database ready")
	return &Store{db: db, log: log}, nil
}

func (s *Store) Collection(name string) store.Collection {
	return collection{db: s.db, path: name}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Set inserts or replaces a document. The dashboard itself never writes;
// this exists for seeding local databases and for tests.
func (s *Store) Set(ctx context.Context, path, id string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sqlStr, args, err := sqlBuilder.
		Insert("documents").
		Columns("collection", "id", "data").
		Values(path, id, string(raw)).
		Suffix("ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqlStr, args...)
	return err
}

type filter struct {
	field string
	value any
}

type collection struct {
	db      *sql.DB
	path    string
	filters []filter
	orderBy string
	orderDi store.Direction
	limit   int
}

func (c collection) Doc(id string) store.DocRef {
	return docRef{db: c.db, path: c.path, id: id}
}

func (c collection) Where(field string, value any) store.Query {
	c.filters = append(append([]filter{}, c.filters...), filter{field: field, value: value})
	return c
}

func (c collection) OrderBy(field string, dir store.Direction) store.Query {
	c.orderBy = field
	c.orderDi = dir
	return c
}

func (c collection) Limit(n int) store.Query {
	c.limit = n
	return c
}

func (c collection) build(columns ...string) squirrel.SelectBuilder {
	q := sqlBuilder.Select(columns...).From("documents").
		Where(squirrel.Eq{"collection": c.path})
	for _, f := range c.filters {
		q = q.Where(squirrel.Expr("json_extract(data, ?) = ?", "$."+f.field, sqlValue(f.value)))
	}
	return q
}

func (c collection) Documents(ctx context.Context) ([]store.Document, error) {
	log := logger.FromContext(ctx).WithPrefix("sqlite")

	q := c.build("id", "data")
	if c.orderBy != "" {
		dir := "ASC"
		if c.orderDi == store.Desc {
			dir = "DESC"
		}
		q = q.OrderBy(fmt.Sprintf("json_extract(data, '$.%s') %s", c.orderBy, dir))
	}
	// rowid keeps ties in insertion order so fetches are deterministic
	q = q.OrderBy("rowid ASC")
	if c.limit > 0 {
		q = q.Limit(uint64(c.limit))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := c.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query collection %s: %v", c.path, err)
		return nil, err
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			log.Error("failed to scan document row: %v", err)
			return nil, err
		}
		var data map[string]any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			log.Error("corrupt document %s/%s: %v", c.path, id, err)
			return nil, err
		}
		docs = append(docs, store.Document{ID: id, Data: data})
	}
	log.Debug("collection %s returned %d documents", c.path, len(docs))
	return docs, rows.Err()
}

func (c collection) Count(ctx context.Context) (int, error) {
	sqlStr, args, err := c.build("COUNT(*)").ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := c.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type docRef struct {
	db   *sql.DB
	path string
	id   string
}

func (r docRef) Get(ctx context.Context) (*store.Document, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `
SELECT data
FROM documents
WHERE collection = ? AND id = ?
`, r.path, r.id).Scan(&raw)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return &store.Document{ID: r.id, Data: data}, nil
}

func (r docRef) Collection(name string) store.Collection {
	return collection{db: r.db, path: r.path + "/" + r.id + "/" + name}
}

// sqlValue maps a filter value to what json_extract yields for it.
func sqlValue(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return v
}
