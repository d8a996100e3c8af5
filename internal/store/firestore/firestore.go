// Package firestore adapts a Cloud Firestore project to the store contract.
// Firestore is the production backend: documents come back as generic maps
// and timestamps as native time.Time values.
package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/jishinalert/dashboard/internal/logger"
	"github.com/jishinalert/dashboard/internal/store"
)

type fsStore struct {
	client *fs.Client
}

// Open connects to the given Firestore project. An empty credentials path
// falls back to application-default credentials.
func Open(ctx context.Context, projectID, credentialsFile string) (store.Store, error) {
	log := logger.FromContext(ctx).WithPrefix("firestore")
	log.Info("connecting to firestore project %s", projectID)

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := fs.NewClient(ctx, projectID, opts...)
	if err != nil {
		log.Error("failed to create firestore client: %v", err)
		return nil, err
	}
	return &fsStore{client: client}, nil
}

func (s *fsStore) Collection(name string) store.Collection {
	return fsCollection{ref: s.client.Collection(name)}
}

func (s *fsStore) Ping(ctx context.Context) error {
	// A limit-1 read is the cheapest round trip the API offers.
	it := s.client.Collection("Admin").Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (s *fsStore) Close() error {
	return s.client.Close()
}

type fsCollection struct {
	ref *fs.CollectionRef
}

func (c fsCollection) Doc(id string) store.DocRef {
	return fsDocRef{ref: c.ref.Doc(id)}
}

func (c fsCollection) Where(field string, value any) store.Query {
	return fsQuery{q: c.ref.Where(field, "==", value)}
}

func (c fsCollection) OrderBy(field string, dir store.Direction) store.Query {
	return fsQuery{q: c.ref.Query}.OrderBy(field, dir)
}

func (c fsCollection) Limit(n int) store.Query {
	return fsQuery{q: c.ref.Limit(n)}
}

func (c fsCollection) Documents(ctx context.Context) ([]store.Document, error) {
	return fsQuery{q: c.ref.Query}.Documents(ctx)
}

func (c fsCollection) Count(ctx context.Context) (int, error) {
	return fsQuery{q: c.ref.Query}.Count(ctx)
}

type fsQuery struct {
	q fs.Query
}

func (q fsQuery) Where(field string, value any) store.Query {
	return fsQuery{q: q.q.Where(field, "==", value)}
}

func (q fsQuery) OrderBy(field string, dir store.Direction) store.Query {
	d := fs.Asc
	if dir == store.Desc {
		d = fs.Desc
	}
	return fsQuery{q: q.q.OrderBy(field, d)}
}

func (q fsQuery) Limit(n int) store.Query {
	return fsQuery{q: q.q.Limit(n)}
}

func (q fsQuery) Documents(ctx context.Context) ([]store.Document, error) {
	it := q.q.Documents(ctx)
	defer it.Stop()

	var docs []store.Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (q fsQuery) Count(ctx context.Context) (int, error) {
	docs, err := q.Documents(ctx)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

type fsDocRef struct {
	ref *fs.DocumentRef
}

func (r fsDocRef) Get(ctx context.Context) (*store.Document, error) {
	snap, err := r.ref.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &store.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (r fsDocRef) Collection(name string) store.Collection {
	return fsCollection{ref: r.ref.Collection(name)}
}
