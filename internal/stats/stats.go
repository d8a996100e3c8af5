// Package stats computes the aggregate figures behind the dashboard
// widgets from slices of normalized records. Every averaged or
// percentage metric returns 0 for an empty input instead of failing on
// the division.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jishinalert/dashboard/internal/models"
)

// maxGameScore is the score ceiling a single game can reach. The
// overview average expresses scores as a percentage of this ceiling.
const maxGameScore = 300

var gradeOrder = []string{"A", "B", "C", "D", "F"}

// AverageScore computes the overview's normalized average:
// round(totalScore / gameCount * 100 / 300). Games with a zero score are
// treated as unscored and excluded, matching how the data was recorded.
func AverageScore(gameplay []models.GameplayRecord) int {
	var total, count int
	for _, g := range gameplay {
		if g.Score > 0 {
			total += g.Score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count) * 100 / maxGameScore))
}

// GradeDistribution counts grades and computes a per-grade percentage of
// the total. Percentages are rounded independently per bucket, so they
// may not sum to 100; the UI shows them as-is. Grades outside A-F (such
// as "N/A") count toward the total but land in no bucket.
func GradeDistribution(grades []string) models.GradeDistribution {
	counts := make(map[string]int, len(gradeOrder))
	for _, g := range grades {
		counts[upper(g)]++
	}
	dist := models.GradeDistribution{Total: len(grades)}
	for _, g := range gradeOrder {
		dist.Buckets = append(dist.Buckets, models.GradeBucket{
			Grade:   g,
			Count:   counts[g],
			Percent: roundPercent(counts[g], dist.Total),
		})
	}
	return dist
}

// GameplayGrades extracts the grade column from gameplay records,
// optionally restricted to one difficulty ("all" keeps everything).
func GameplayGrades(records []models.GameplayRecord, difficulty string) []string {
	var grades []string
	for _, g := range records {
		if difficulty == "all" || g.Difficulty == difficulty {
			grades = append(grades, g.Grade)
		}
	}
	return grades
}

// QuizGrades extracts the derived grade column from quiz records for one
// difficulty.
func QuizGrades(records []models.QuizRecord, difficulty string) []string {
	var grades []string
	for _, q := range records {
		if q.Difficulty == difficulty {
			grades = append(grades, q.Grade)
		}
	}
	return grades
}

// DifficultyCounts tallies games per difficulty. Unrecognized
// difficulties are dropped, as the chart has no slice for them.
func DifficultyCounts(records []models.GameplayRecord) models.DifficultyStat {
	var d models.DifficultyStat
	for _, g := range records {
		switch g.Difficulty {
		case "Easy":
			d.Easy++
		case "Normal":
			d.Normal++
		case "Hard":
			d.Hard++
		}
	}
	return d
}

// VictoryCounts tallies game outcomes.
func VictoryCounts(records []models.GameplayRecord) models.VictoryStat {
	var v models.VictoryStat
	for _, g := range records {
		if g.Victory {
			v.Victories++
		} else {
			v.Failures++
		}
	}
	return v
}

// AverageScoreByDifficulty computes the plain rounded mean score per
// difficulty (zero scores included), 0 where a difficulty has no games.
func AverageScoreByDifficulty(records []models.GameplayRecord) models.AvgScoreStat {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, g := range records {
		switch g.Difficulty {
		case "Easy", "Normal", "Hard":
			sums[g.Difficulty] += g.Score
			counts[g.Difficulty]++
		}
	}
	mean := func(d string) int {
		if counts[d] == 0 {
			return 0
		}
		return int(math.Round(float64(sums[d]) / float64(counts[d])))
	}
	return models.AvgScoreStat{Easy: mean("Easy"), Normal: mean("Normal"), Hard: mean("Hard")}
}

// dateLabel renders a local display date, the histogram's bucket key.
func dateLabel(t time.Time) string {
	return t.Format("1/2/2006")
}

// ActivityHistogram buckets gameplay into the last 7 calendar days ending
// at now. The result always has exactly 7 chronological entries; days
// without activity stay at zero.
func ActivityHistogram(records []models.GameplayRecord, now time.Time) []models.ActivityPoint {
	points := make([]models.ActivityPoint, 0, 7)
	index := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		label := dateLabel(now.AddDate(0, 0, -i))
		index[label] = len(points)
		points = append(points, models.ActivityPoint{Date: label})
	}
	for _, g := range records {
		if i, ok := index[dateLabel(g.Timestamp)]; ok {
			points[i].Count++
		}
	}
	return points
}

// QuizStats computes the assessment page's summary row.
func QuizStats(records []models.QuizRecord) models.QuizStat {
	s := models.QuizStat{TotalAttempts: len(records), AvgCorrect: "0", AvgWrong: "0"}
	var correct, wrong, questions int
	for _, q := range records {
		correct += q.CorrectAnswers
		wrong += q.WrongAnswers
		questions += q.TotalQuestions
	}
	if s.TotalAttempts > 0 {
		s.AvgCorrect = fmt.Sprintf("%.1f", float64(correct)/float64(s.TotalAttempts))
		s.AvgWrong = fmt.Sprintf("%.1f", float64(wrong)/float64(s.TotalAttempts))
	}
	s.SuccessRate = roundPercent(correct, questions)
	return s
}

// QuestionStats breaks accuracy down per question position for one
// difficulty's attempts, which must arrive sorted newest-first; the
// newest attempt supplies the question texts. Always returns 5 entries.
func QuestionStats(records []models.QuizRecord) []models.QuestionStat {
	var texts []string
	if len(records) > 0 {
		texts = records[0].QuestionTexts
	}
	out := make([]models.QuestionStat, 0, 5)
	for i := 0; i < 5; i++ {
		stat := models.QuestionStat{Number: i + 1, Text: "Question not available"}
		if i < len(texts) && texts[i] != "" {
			stat.Text = texts[i]
		}
		for _, q := range records {
			if i < len(q.AnswerCorrectness) {
				stat.Total++
				if q.AnswerCorrectness[i] {
					stat.Correct++
				}
			}
		}
		stat.Wrong = stat.Total - stat.Correct
		stat.Accuracy = roundPercent(stat.Correct, stat.Total)
		out = append(out, stat)
	}
	return out
}

// FeedbackStats computes the feedback page's summary row.
func FeedbackStats(records []models.FeedbackRecord, now time.Time) models.FeedbackStat {
	s := models.FeedbackStat{Total: len(records)}
	if s.Total == 0 {
		return s
	}
	weekAgo := now.AddDate(0, 0, -7)
	users := make(map[string]struct{})
	latest := records[0].Timestamp
	for _, f := range records {
		if !f.Timestamp.Before(weekAgo) {
			s.ThisWeek++
		}
		users[f.UserID] = struct{}{}
		if f.Timestamp.After(latest) {
			latest = f.Timestamp
		}
	}
	s.UniqueUsers = len(users)
	s.LatestAgo = TimeAgo(latest, now)
	return s
}

// RecentActivity merges gameplay and quiz events into one newest-first
// feed, truncated to limit entries.
func RecentActivity(gameplay []models.GameplayRecord, quizzes []models.QuizRecord, limit int) []models.ActivityEvent {
	events := make([]models.ActivityEvent, 0, len(gameplay)+len(quizzes))
	for _, g := range gameplay {
		events = append(events, models.ActivityEvent{
			Type:      "gameplay",
			User:      g.UserName,
			Action:    fmt.Sprintf("Completed %s mode - Score: %d", g.Difficulty, g.Score),
			Icon:      "🎮",
			Timestamp: g.Timestamp,
		})
	}
	for _, q := range quizzes {
		events = append(events, models.ActivityEvent{
			Type:      "quiz",
			User:      q.UserName,
			Action:    fmt.Sprintf("Took %s quiz - Score: %d/%d", q.Difficulty, q.CorrectAnswers, q.TotalQuestions),
			Icon:      "📝",
			Timestamp: q.Timestamp,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// TimeAgo humanizes how long ago t was relative to now.
func TimeAgo(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%d days ago", seconds/86400)
	default:
		return dateLabel(t)
	}
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func upper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 32
		}
	}
	return string(out)
}
