package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishinalert/dashboard/internal/models"
)

func TestDifficulty(t *testing.T) {
	cfg := Difficulty(models.DifficultyStat{Easy: 3, Normal: 5, Hard: 1})
	assert.Equal(t, "doughnut", cfg.Type)
	assert.Equal(t, []string{"Easy", "Normal", "Hard"}, cfg.Data.Labels)
	require.Len(t, cfg.Data.Datasets, 1)
	assert.Equal(t, []int{3, 5, 1}, cfg.Data.Datasets[0].Data)
}

func TestActivity(t *testing.T) {
	points := []models.ActivityPoint{
		{Date: "3/9/2025", Count: 2},
		{Date: "3/10/2025", Count: 5},
	}
	cfg := Activity(points)
	assert.Equal(t, "line", cfg.Type)
	assert.Equal(t, []string{"3/9/2025", "3/10/2025"}, cfg.Data.Labels)
	assert.Equal(t, []int{2, 5}, cfg.Data.Datasets[0].Data)
	assert.Equal(t, "#2563eb", cfg.Data.Datasets[0].BorderColor)
}

func TestGradesJSONShape(t *testing.T) {
	dist := models.GradeDistribution{
		Total: 2,
		Buckets: []models.GradeBucket{
			{Grade: "A", Count: 1}, {Grade: "B", Count: 1}, {Grade: "C"}, {Grade: "D"}, {Grade: "F"},
		},
	}
	cfg := Grades(dist, "bar")

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "bar", decoded["type"])

	data := decoded["data"].(map[string]any)
	assert.Len(t, data["labels"], 5)
	// empty-series fields stay out of the payload
	ds := data["datasets"].([]any)[0].(map[string]any)
	_, hasBorder := ds["borderColor"]
	assert.False(t, hasBorder)
}
