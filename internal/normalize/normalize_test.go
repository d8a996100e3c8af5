package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishinalert/dashboard/internal/store"
)

func TestTimestampResolution(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	native := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"native temporal wins", native, native},
		{"rfc3339 string", "2024-06-01T08:30:00Z", native},
		{"space-separated string", "2024-06-01 08:30:00", time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)},
		{"date only", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"garbage string falls back to now", "not a date", now},
		{"nil falls back to now", nil, now},
		{"number falls back to now", float64(1717230600), now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Timestamp(tt.in, now))
		})
	}
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{95, "A"}, {90, "A"},
		{85, "B"}, {80, "B"},
		{65, "C"}, {60, "C"},
		{45, "D"}, {40, "D"},
		{10, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.percent), "percent=%d", tt.percent)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 80, Percent(4, 5))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 0, Percent(3, 0))
}

func TestUserDefaults(t *testing.T) {
	u := User(store.Document{ID: "u1", Data: map[string]any{}})
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Unknown", u.Name)
	assert.Equal(t, "No email", u.Email)
	assert.Nil(t, u.Age)
	assert.Nil(t, u.CreatedAt)
}

func TestUserFields(t *testing.T) {
	created := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	u := User(store.Document{ID: "u1", Data: map[string]any{
		"displayName": "Ana",
		"email":       "ana@example.com",
		"age":         float64(19),
		"createdAt":   created,
	}})
	assert.Equal(t, "Ana", u.Name)
	require.NotNil(t, u.Age)
	assert.Equal(t, 19, *u.Age)
	require.NotNil(t, u.CreatedAt)
	assert.Equal(t, created, *u.CreatedAt)
}

func TestUserLegacyNameField(t *testing.T) {
	u := User(store.Document{ID: "u1", Data: map[string]any{"name": "Old Name"}})
	assert.Equal(t, "Old Name", u.Name)
}

func TestGameplayDefaults(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	g := Gameplay(store.Document{ID: "g1", Data: map[string]any{}}, "u1", "Ana", now)
	assert.Equal(t, "Normal", g.Difficulty)
	assert.Equal(t, "N/A", g.Grade)
	assert.Equal(t, 0, g.Score)
	assert.False(t, g.Victory)
	assert.Equal(t, now, g.Timestamp)
	assert.Equal(t, "Ana", g.UserName)
}

func TestQuizDerivations(t *testing.T) {
	now := time.Now()
	q := Quiz(store.Document{ID: "q1", Data: map[string]any{
		"correctAnswers":    float64(4),
		"wrongAnswers":      float64(1),
		"answerCorrectness": []any{true, true, true, true, false},
	}}, "u1", "Ana", now)

	// totalQuestions missing defaults to 5
	assert.Equal(t, 5, q.TotalQuestions)
	assert.Equal(t, 80, q.ScorePercent)
	assert.Equal(t, "B", q.Grade)
	assert.Equal(t, []bool{true, true, true, true, false}, q.AnswerCorrectness)
	assert.Equal(t, "Easy", q.Difficulty)
}

func TestFeedbackTextPrecedence(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{"comments wins", map[string]any{"comments": "c", "feedback": "f", "test": "t"}, "c"},
		{"feedback next", map[string]any{"feedback": "f", "test": "t"}, "f"},
		{"test last", map[string]any{"test": "t"}, "t"},
		{"all missing", map[string]any{}, "No feedback text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Feedback(store.Document{ID: "f1", Data: tt.data}, now)
			assert.Equal(t, tt.want, f.Text)
		})
	}
}

func TestFeedbackTimestampFallsBackToPhilippinesTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f := Feedback(store.Document{ID: "f1", Data: map[string]any{
		"philippinesTime": "2024-06-01 08:30:00",
	}}, now)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC), f.Timestamp)

	empty := Feedback(store.Document{ID: "f2", Data: map[string]any{}}, now)
	assert.Equal(t, now, empty.Timestamp)
	assert.Equal(t, "Anonymous", empty.UserName)
	assert.Equal(t, "N/A", empty.Email)
}

func TestCrashDefaults(t *testing.T) {
	c := Crash(store.Document{ID: "c1", Data: map[string]any{}})
	assert.Equal(t, "Guest", c.DisplayName)
	assert.Equal(t, "No message", c.ErrorMessage)
	assert.Equal(t, "Error", c.LogType)
	assert.Equal(t, "N/A", c.LocalTime)
	assert.Equal(t, "N/A", c.UTCTime)
	assert.Equal(t, "Unknown", c.DeviceModel)
}

func TestCrashTimesStayOpaque(t *testing.T) {
	c := Crash(store.Document{ID: "c1", Data: map[string]any{
		"timestamp":    "3/10/2025 11:04:05 PM",
		"timestampUTC": "not even a date",
	}})
	assert.Equal(t, "3/10/2025 11:04:05 PM", c.LocalTime)
	assert.Equal(t, "not even a date", c.UTCTime)
}

func TestAdminAuthorization(t *testing.T) {
	flag := Admin(store.Document{ID: "a1", Data: map[string]any{"userID": "x", "isAdmin": true}})
	assert.True(t, flag.Authorized())

	role := Admin(store.Document{ID: "a2", Data: map[string]any{"userID": "y", "role": "admin"}})
	assert.True(t, role.Authorized())

	neither := Admin(store.Document{ID: "a3", Data: map[string]any{"userID": "z", "role": "viewer"}})
	assert.False(t, neither.Authorized())
}

func TestMalformedDocumentYieldsDefaults(t *testing.T) {
	// every field carries the wrong type
	doc := store.Document{ID: "weird", Data: map[string]any{
		"displayName": float64(42),
		"email":       true,
		"age":         "nineteen",
		"finalScore":  "lots",
	}}
	u := User(doc)
	assert.Equal(t, "Unknown", u.Name)
	assert.Equal(t, "No email", u.Email)
	assert.Nil(t, u.Age)

	g := Gameplay(doc, "u", "n", time.Now())
	assert.Equal(t, 0, g.Score)
}
