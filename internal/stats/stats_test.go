package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishinalert/dashboard/internal/models"
)

func gp(score int, difficulty string, victory bool, ts time.Time) models.GameplayRecord {
	return models.GameplayRecord{Score: score, Difficulty: difficulty, Victory: victory, Timestamp: ts}
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name    string
		records []models.GameplayRecord
		want    int
	}{
		{
			name: "normalizes against max score",
			records: []models.GameplayRecord{
				gp(300, "Normal", true, time.Time{}),
				gp(300, "Normal", true, time.Time{}),
			},
			want: 100,
		},
		{
			name: "zero scores excluded",
			records: []models.GameplayRecord{
				gp(300, "Normal", true, time.Time{}),
				gp(0, "Normal", false, time.Time{}),
			},
			want: 100,
		},
		{
			name: "rounds the percentage",
			records: []models.GameplayRecord{
				gp(100, "Normal", true, time.Time{}),
			},
			want: 33,
		},
		{name: "no records", records: nil, want: 0},
		{
			name:    "only zero scores",
			records: []models.GameplayRecord{gp(0, "Normal", false, time.Time{})},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageScore(tt.records))
		})
	}
}

func TestGradeDistribution(t *testing.T) {
	dist := GradeDistribution([]string{"A", "B", "C"})

	require.Len(t, dist.Buckets, 5)
	assert.Equal(t, 3, dist.Total)

	byGrade := map[string]models.GradeBucket{}
	for _, b := range dist.Buckets {
		byGrade[b.Grade] = b
	}
	// 1/3 rounds to 33 per bucket; the three do not sum to 100.
	assert.Equal(t, 33, byGrade["A"].Percent)
	assert.Equal(t, 33, byGrade["B"].Percent)
	assert.Equal(t, 33, byGrade["C"].Percent)
	assert.Equal(t, 0, byGrade["D"].Count)
	assert.Equal(t, 0, byGrade["F"].Count)
}

func TestGradeDistributionEmpty(t *testing.T) {
	dist := GradeDistribution(nil)
	require.Len(t, dist.Buckets, 5)
	assert.Equal(t, 0, dist.Total)
	for _, b := range dist.Buckets {
		assert.Equal(t, 0, b.Percent)
	}
}

func TestGradeDistributionOrder(t *testing.T) {
	dist := GradeDistribution([]string{"F", "a", "N/A"})
	var order []string
	for _, b := range dist.Buckets {
		order = append(order, b.Grade)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "F"}, order)
	// lowercase grades are folded; "N/A" counts toward the total only
	assert.Equal(t, 1, dist.Buckets[0].Count)
	assert.Equal(t, 3, dist.Total)
}

func TestDifficultyAndVictoryCounts(t *testing.T) {
	records := []models.GameplayRecord{
		gp(10, "Easy", true, time.Time{}),
		gp(20, "Normal", false, time.Time{}),
		gp(30, "Normal", true, time.Time{}),
		gp(40, "Hard", false, time.Time{}),
		gp(50, "Bizarre", true, time.Time{}),
	}

	d := DifficultyCounts(records)
	assert.Equal(t, models.DifficultyStat{Easy: 1, Normal: 2, Hard: 1}, d)

	v := VictoryCounts(records)
	assert.Equal(t, models.VictoryStat{Victories: 3, Failures: 2}, v)
}

func TestAverageScoreByDifficulty(t *testing.T) {
	records := []models.GameplayRecord{
		gp(100, "Easy", true, time.Time{}),
		gp(0, "Easy", false, time.Time{}), // zero scores count here
		gp(151, "Normal", true, time.Time{}),
	}
	got := AverageScoreByDifficulty(records)
	assert.Equal(t, models.AvgScoreStat{Easy: 50, Normal: 151, Hard: 0}, got)
}

func TestActivityHistogram(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	records := []models.GameplayRecord{
		gp(1, "Easy", true, now),
		gp(2, "Easy", true, now.Add(-2*time.Hour)),
		gp(3, "Easy", true, now.AddDate(0, 0, -3)),
		gp(4, "Easy", true, now.AddDate(0, 0, -8)), // outside the window
	}

	points := ActivityHistogram(records, now)
	require.Len(t, points, 7)

	assert.Equal(t, "3/4/2025", points[0].Date)
	assert.Equal(t, "3/10/2025", points[6].Date)
	assert.Equal(t, 2, points[6].Count)
	assert.Equal(t, 1, points[3].Count)
	assert.Equal(t, 0, points[0].Count)
}

func TestActivityHistogramEmpty(t *testing.T) {
	points := ActivityHistogram(nil, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, points, 7)
	for _, p := range points {
		assert.Equal(t, 0, p.Count)
	}
}

func TestQuizStats(t *testing.T) {
	records := []models.QuizRecord{
		{CorrectAnswers: 4, WrongAnswers: 1, TotalQuestions: 5},
		{CorrectAnswers: 3, WrongAnswers: 2, TotalQuestions: 5},
	}
	s := QuizStats(records)
	assert.Equal(t, 2, s.TotalAttempts)
	assert.Equal(t, "3.5", s.AvgCorrect)
	assert.Equal(t, "1.5", s.AvgWrong)
	assert.Equal(t, 70, s.SuccessRate)
}

func TestQuizStatsEmpty(t *testing.T) {
	s := QuizStats(nil)
	assert.Equal(t, 0, s.TotalAttempts)
	assert.Equal(t, "0", s.AvgCorrect)
	assert.Equal(t, "0", s.AvgWrong)
	assert.Equal(t, 0, s.SuccessRate)
}

func TestQuestionStats(t *testing.T) {
	records := []models.QuizRecord{
		{
			QuestionTexts:     []string{"What is a drop cover hold?", "", "Q3"},
			AnswerCorrectness: []bool{true, false, true},
		},
		{
			QuestionTexts:     []string{"older text"},
			AnswerCorrectness: []bool{false, false},
		},
	}

	out := QuestionStats(records)
	require.Len(t, out, 5)

	assert.Equal(t, "What is a drop cover hold?", out[0].Text)
	assert.Equal(t, 2, out[0].Total)
	assert.Equal(t, 1, out[0].Correct)
	assert.Equal(t, 1, out[0].Wrong)
	assert.Equal(t, 50, out[0].Accuracy)

	// blank text in the newest attempt falls back to the placeholder
	assert.Equal(t, "Question not available", out[1].Text)
	// question 3 was only answered in the newest attempt
	assert.Equal(t, 1, out[2].Total)
	// questions 4 and 5 never answered
	assert.Equal(t, 0, out[3].Total)
	assert.Equal(t, "Question not available", out[4].Text)
	assert.Equal(t, 5, out[4].Number)
}

func TestFeedbackStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []models.FeedbackRecord{
		{UserID: "u1", Timestamp: now.Add(-time.Hour)},
		{UserID: "u1", Timestamp: now.AddDate(0, 0, -3)},
		{UserID: "u2", Timestamp: now.AddDate(0, 0, -10)},
	}

	s := FeedbackStats(records, now)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ThisWeek)
	assert.Equal(t, 2, s.UniqueUsers)
	assert.Equal(t, "1 hours ago", s.LatestAgo)
}

func TestFeedbackStatsEmpty(t *testing.T) {
	s := FeedbackStats(nil, time.Now())
	assert.Equal(t, models.FeedbackStat{}, s)
}

func TestRecentActivity(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gameplay := []models.GameplayRecord{
		{UserName: "Ana", Difficulty: "Hard", Score: 250, Timestamp: now.Add(-time.Minute)},
	}
	quizzes := []models.QuizRecord{
		{UserName: "Ben", Difficulty: "Easy", CorrectAnswers: 4, TotalQuestions: 5, Timestamp: now},
	}

	events := RecentActivity(gameplay, quizzes, 10)
	require.Len(t, events, 2)
	assert.Equal(t, "quiz", events[0].Type)
	assert.Equal(t, "Took Easy quiz - Score: 4/5", events[0].Action)
	assert.Equal(t, "📝", events[0].Icon)
	assert.Equal(t, "gameplay", events[1].Type)
	assert.Equal(t, "Completed Hard mode - Score: 250", events[1].Action)
	assert.Equal(t, "🎮", events[1].Icon)
}

func TestRecentActivityLimit(t *testing.T) {
	now := time.Now()
	var gameplay []models.GameplayRecord
	for i := 0; i < 8; i++ {
		gameplay = append(gameplay, gp(i, "Easy", true, now.Add(-time.Duration(i)*time.Minute)))
	}
	events := RecentActivity(gameplay, nil, 5)
	assert.Len(t, events, 5)
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago"},
		{"days", now.AddDate(0, 0, -2), "2 days ago"},
		{"older than a week", now.AddDate(0, 0, -30), "2/8/2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(tt.t, now))
		})
	}
}
