package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishinalert/dashboard/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"displayName": "Ana", "age": float64(19)}))

	doc, err := s.Collection("users").Doc("u1").Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.ID)
	assert.Equal(t, "Ana", doc.String("displayName"))
	assert.Equal(t, float64(19), doc.Data["age"])
}

func TestWhereEquality(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "feedbacks", "f1", map[string]any{"userId": "u1", "rating": float64(5)}))
	require.NoError(t, s.Set(ctx, "feedbacks", "f2", map[string]any{"userId": "u2", "rating": float64(3)}))
	require.NoError(t, s.Set(ctx, "feedbacks", "f3", map[string]any{"userId": "u1", "rating": float64(4)}))

	docs, err := s.Collection("feedbacks").Where("userId", "u1").Documents(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	count, err := s.Collection("feedbacks").Where("userId", "u1").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestWhereBool(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "Admin", "a1", map[string]any{"userID": "admin1", "isAdmin": true}))
	require.NoError(t, s.Set(ctx, "Admin", "a2", map[string]any{"userID": "mortal", "isAdmin": false}))

	docs, err := s.Collection("Admin").Where("isAdmin", true).Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a1", docs[0].ID)
}

func TestOrderByAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "crashReports", "c1", map[string]any{"timestampUTC": "2025-03-08 10:00:00"}))
	require.NoError(t, s.Set(ctx, "crashReports", "c2", map[string]any{"timestampUTC": "2025-03-10 10:00:00"}))
	require.NoError(t, s.Set(ctx, "crashReports", "c3", map[string]any{"timestampUTC": "2025-03-09 10:00:00"}))

	docs, err := s.Collection("crashReports").
		OrderBy("timestampUTC", store.Desc).
		Limit(2).
		Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "c2", docs[0].ID)
	assert.Equal(t, "c3", docs[1].ID)
}

func TestSubCollections(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"displayName": "Ana"}))
	require.NoError(t, s.Set(ctx, "users/u1/gameplayHistory", "g1", map[string]any{"finalScore": float64(100)}))
	require.NoError(t, s.Set(ctx, "users/u1/gameplayHistory", "g2", map[string]any{"finalScore": float64(200)}))

	docs, err := s.Collection("users").Doc("u1").Collection("gameplayHistory").Documents(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// the parent collection only sees its own documents
	users, err := s.Collection("users").Documents(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"displayName": "Ana"}))
	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"displayName": "Ana Cruz"}))

	docs, err := s.Collection("users").Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Ana Cruz", docs[0].String("displayName"))
}

func TestPing(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
