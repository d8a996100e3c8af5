// Package store defines the document-database contract the dashboard reads
// from: collections of opaque key-value documents supporting equality
// filters, single-field ordering and a result limit, with sub-collections
// addressable from a parent document.
package store

import "context"

// Document is one opaque document from the backing store.
type Document struct {
	ID   string
	Data map[string]any
}

// String returns the value under key if it is a string, or "".
func (d Document) String(key string) string {
	if s, ok := d.Data[key].(string); ok {
		return s
	}
	return ""
}

// Direction orders query results.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query is the portable query surface. Implementations return derived
// queries; the receiver is never mutated.
type Query interface {
	// Where adds an equality filter on a document field.
	Where(field string, value any) Query
	// OrderBy orders results by a document field.
	OrderBy(field string, dir Direction) Query
	// Limit caps the number of returned documents.
	Limit(n int) Query
	// Documents runs the query and returns all matching documents.
	Documents(ctx context.Context) ([]Document, error)
	// Count runs the query and returns the number of matching documents.
	Count(ctx context.Context) (int, error)
}

// DocRef addresses a single document and its sub-collections.
type DocRef interface {
	Get(ctx context.Context) (*Document, error)
	Collection(name string) Collection
}

// Collection is a queryable collection that can also address its documents.
type Collection interface {
	Query
	Doc(id string) DocRef
}

// Store is a connected document database.
type Store interface {
	Collection(name string) Collection
	// Ping verifies the connection is usable.
	Ping(ctx context.Context) error
	Close() error
}
