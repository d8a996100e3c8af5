package models

import "time"

// OverviewStat feeds the four headline counters on the overview page.
type OverviewStat struct {
	TotalUsers   int `json:"total_users"`
	TotalGames   int `json:"total_games"`
	TotalQuizzes int `json:"total_quizzes"`
	AvgScore     int `json:"avg_score"` // percentage, scores normalized against a max of 300
}

// GradeBucket is one slice of a grade distribution. Percent is rounded
// independently per bucket, so a distribution's percents may not sum to 100.
type GradeBucket struct {
	Grade   string `json:"grade"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// GradeDistribution holds buckets in fixed A, B, C, D, F order.
type GradeDistribution struct {
	Total   int           `json:"total"`
	Buckets []GradeBucket `json:"buckets"`
}

// DifficultyStat counts games per difficulty.
type DifficultyStat struct {
	Easy   int `json:"easy"`
	Normal int `json:"normal"`
	Hard   int `json:"hard"`
}

// VictoryStat counts game outcomes.
type VictoryStat struct {
	Victories int `json:"victories"`
	Failures  int `json:"failures"`
}

// AvgScoreStat holds the plain rounded mean score per difficulty.
type AvgScoreStat struct {
	Easy   int `json:"easy"`
	Normal int `json:"normal"`
	Hard   int `json:"hard"`
}

// ActivityPoint is one day of the 7-day activity histogram.
type ActivityPoint struct {
	Date  string `json:"date"` // local display date
	Count int    `json:"count"`
}

// QuizStat feeds the assessment summary widgets.
type QuizStat struct {
	TotalAttempts int    `json:"total_attempts"`
	AvgCorrect    string `json:"avg_correct"` // one decimal, "0" when no attempts
	AvgWrong      string `json:"avg_wrong"`
	SuccessRate   int    `json:"success_rate"` // percentage
}

// QuestionStat is the per-question accuracy breakdown for one difficulty.
type QuestionStat struct {
	Number   int    `json:"number"` // 1-based
	Text     string `json:"text"`
	Correct  int    `json:"correct"`
	Wrong    int    `json:"wrong"`
	Total    int    `json:"total"`
	Accuracy int    `json:"accuracy"` // percentage
}

// FeedbackStat feeds the feedback summary widgets.
type FeedbackStat struct {
	Total       int    `json:"total"`
	ThisWeek    int    `json:"this_week"`
	UniqueUsers int    `json:"unique_users"`
	LatestAgo   string `json:"latest_ago"`
}

// ActivityEvent is one entry in the overview's recent-activity feed.
type ActivityEvent struct {
	Type      string    `json:"type"` // "gameplay" or "quiz"
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Icon      string    `json:"icon"`
	Timestamp time.Time `json:"timestamp"`
}

func (a ActivityEvent) When() time.Time { return a.Timestamp }
