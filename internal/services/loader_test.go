package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishinalert/dashboard/internal/models"
	"github.com/jishinalert/dashboard/internal/testutil"
)

func seedUser(m *testutil.MemStore, id, name string, games, quizzes int) {
	m.Seed(colUsers, id, map[string]any{"displayName": name})
	for i := 0; i < games; i++ {
		m.Seed(colUsers+"/"+id+"/"+colGameplay, id+"-g"+string(rune('a'+i)), map[string]any{
			"gameMode":   "Normal",
			"finalScore": float64(100 + i),
			"victory":    true,
			"timestamp":  time.Date(2025, 3, 10, 10+i, 0, 0, 0, time.UTC),
		})
	}
	for i := 0; i < quizzes; i++ {
		m.Seed(colUsers+"/"+id+"/"+colQuizzes, id+"-q"+string(rune('a'+i)), map[string]any{
			"difficulty":     "Easy",
			"correctAnswers": float64(4),
			"wrongAnswers":   float64(1),
			"totalQuestions": float64(5),
			"timestamp":      time.Date(2025, 3, 9, 10+i, 0, 0, 0, time.UTC),
		})
	}
}

func TestLoaderUsersRecomputesCounts(t *testing.T) {
	m := testutil.NewMemStore()
	seedUser(m, "u1", "Ana", 2, 1)
	seedUser(m, "u2", "Ben", 0, 0)
	m.Seed(colFeedback, "f1", map[string]any{"userId": "u1", "rating": float64(5)})
	m.Seed(colFeedback, "f2", map[string]any{"userId": "u1", "rating": float64(4)})

	l := NewLoader(m, 200)
	users, err := l.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	byID := map[string]models.UserRecord{}
	for _, u := range users {
		byID[u.ID] = u
	}
	assert.Equal(t, 2, byID["u1"].GamesPlayed)
	assert.Equal(t, 1, byID["u1"].QuizzesTaken)
	assert.Equal(t, 2, byID["u1"].FeedbacksGiven)
	assert.Equal(t, "Ana", byID["u1"].Name)
	assert.Equal(t, 0, byID["u2"].TotalActivity())
	assert.Equal(t, models.TierNew, byID["u1"].ActivityTier())
}

func TestLoaderGameplayCarriesUserName(t *testing.T) {
	m := testutil.NewMemStore()
	seedUser(m, "u1", "Ana", 2, 0)
	m.Seed(colUsers, "u2", map[string]any{}) // no display name at all
	m.Seed(colUsers+"/u2/"+colGameplay, "g1", map[string]any{"finalScore": float64(50)})

	l := NewLoader(m, 200)
	records, err := l.Gameplay(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	names := map[string]string{}
	for _, g := range records {
		names[g.UserID] = g.UserName
	}
	assert.Equal(t, "Ana", names["u1"])
	assert.Equal(t, "Unknown User", names["u2"])
}

func TestLoaderGameplayDefaultsMissingTimestamp(t *testing.T) {
	m := testutil.NewMemStore()
	m.Seed(colUsers, "u1", map[string]any{"displayName": "Ana"})
	m.Seed(colUsers+"/u1/"+colGameplay, "g1", map[string]any{"finalScore": float64(50)})

	l := NewLoader(m, 200)
	l.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

	records, err := l.Gameplay(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, l.now(), records[0].Timestamp)
	assert.Equal(t, "Normal", records[0].Difficulty)
}

func TestLoaderCrashesOrderedAndCapped(t *testing.T) {
	m := testutil.NewMemStore()
	m.Seed(colCrashes, "c1", map[string]any{"timestampUTC": "2025-03-08 10:00:00", "errorMessage": "oldest"})
	m.Seed(colCrashes, "c2", map[string]any{"timestampUTC": "2025-03-10 10:00:00", "errorMessage": "newest"})
	m.Seed(colCrashes, "c3", map[string]any{"timestampUTC": "2025-03-09 10:00:00", "errorMessage": "middle"})

	l := NewLoader(m, 2)
	records, err := l.Crashes(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "newest", records[0].ErrorMessage)
	assert.Equal(t, "middle", records[1].ErrorMessage)
}

func TestLoaderPropagatesStoreErrors(t *testing.T) {
	m := testutil.NewMemStore()
	m.FailCollection(colUsers, errors.New("store down"))

	l := NewLoader(m, 200)
	_, err := l.Users(context.Background())
	assert.Error(t, err)
	_, err = l.Gameplay(context.Background())
	assert.Error(t, err)
}
