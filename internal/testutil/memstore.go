// Package testutil provides an in-memory document store for tests. It
// implements the full store contract over plain maps, keeping documents
// in insertion order so fixtures behave deterministically.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/jishinalert/dashboard/internal/store"
)

type memDoc struct {
	id   string
	data map[string]any
}

// MemStore is an in-memory store.Store.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string][]memDoc
	pingErr     error
	queryErr    map[string]error
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		collections: make(map[string][]memDoc),
		queryErr:    make(map[string]error),
	}
}

// Seed inserts or replaces a document under a collection path. Paths use
// "parent/<id>/<sub>" for sub-collections, matching DocRef.Collection.
func (m *MemStore) Seed(path, id string, data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.collections[path]
	for i, d := range docs {
		if d.id == id {
			docs[i].data = data
			return
		}
	}
	m.collections[path] = append(docs, memDoc{id: id, data: data})
}

// FailPing makes Ping return err.
func (m *MemStore) FailPing(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingErr = err
}

// FailCollection makes every query against path return err.
func (m *MemStore) FailCollection(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryErr[path] = err
}

func (m *MemStore) Collection(name string) store.Collection {
	return memCollection{store: m, path: name}
}

func (m *MemStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingErr
}

func (m *MemStore) Close() error { return nil }

type memFilter struct {
	field string
	value any
}

type memCollection struct {
	store   *MemStore
	path    string
	filters []memFilter
	orderBy string
	orderDi store.Direction
	limit   int
}

func (c memCollection) Doc(id string) store.DocRef {
	return memDocRef{store: c.store, path: c.path, id: id}
}

func (c memCollection) Where(field string, value any) store.Query {
	c.filters = append(append([]memFilter{}, c.filters...), memFilter{field: field, value: value})
	return c
}

func (c memCollection) OrderBy(field string, dir store.Direction) store.Query {
	c.orderBy = field
	c.orderDi = dir
	return c
}

func (c memCollection) Limit(n int) store.Query {
	c.limit = n
	return c
}

func (c memCollection) Documents(ctx context.Context) ([]store.Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	if err := c.store.queryErr[c.path]; err != nil {
		return nil, err
	}

	var docs []store.Document
	for _, d := range c.store.collections[c.path] {
		if c.matches(d.data) {
			docs = append(docs, store.Document{ID: d.id, Data: d.data})
		}
	}
	if c.orderBy != "" {
		sortDocs(docs, c.orderBy, c.orderDi)
	}
	if c.limit > 0 && len(docs) > c.limit {
		docs = docs[:c.limit]
	}
	return docs, nil
}

func (c memCollection) Count(ctx context.Context) (int, error) {
	docs, err := c.Documents(ctx)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (c memCollection) matches(data map[string]any) bool {
	for _, f := range c.filters {
		if fmt.Sprint(data[f.field]) != fmt.Sprint(f.value) {
			return false
		}
	}
	return true
}

// sortDocs orders by the stringified field value, which is enough for
// the timestamp strings and names fixtures use. Insertion order breaks
// ties (insertion sort is stable).
func sortDocs(docs []store.Document, field string, dir store.Direction) {
	less := func(a, b store.Document) bool {
		av, bv := fmt.Sprint(a.Data[field]), fmt.Sprint(b.Data[field])
		if dir == store.Desc {
			return av > bv
		}
		return av < bv
	}
	for i := 1; i < len(docs); i++ {
		for j := i; j > 0 && less(docs[j], docs[j-1]); j-- {
			docs[j], docs[j-1] = docs[j-1], docs[j]
		}
	}
}

type memDocRef struct {
	store *MemStore
	path  string
	id    string
}

func (r memDocRef) Get(ctx context.Context) (*store.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, d := range r.store.collections[r.path] {
		if d.id == r.id {
			return &store.Document{ID: d.id, Data: d.data}, nil
		}
	}
	return nil, fmt.Errorf("document %s/%s not found", r.path, r.id)
}

func (r memDocRef) Collection(name string) store.Collection {
	return memCollection{store: r.store, path: r.path + "/" + r.id + "/" + name}
}
