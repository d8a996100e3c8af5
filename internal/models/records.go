package models

import (
	"fmt"
	"time"
)

// Activity tiers derived from a user's combined games+quizzes count.
// The boundaries are part of the dashboard's external contract.
const (
	TierInactive = "inactive"
	TierNew      = "new"
	TierModerate = "moderate"
	TierActive   = "active"
)

// UserRecord is the normalized shape of one user document, with the
// related-collection counts recomputed on every fetch.
type UserRecord struct {
	ID             string
	Name           string
	Email          string
	Age            *int       // nil when the document has no age
	CreatedAt      *time.Time // nil when the document has no createdAt
	GamesPlayed    int
	QuizzesTaken   int
	FeedbacksGiven int
}

// TotalActivity is the combined games+quizzes count.
func (u UserRecord) TotalActivity() int {
	return u.GamesPlayed + u.QuizzesTaken
}

// ActivityTier buckets the user by total activity:
// inactive=0, new=1-2, moderate=3-9, active=10+.
func (u UserRecord) ActivityTier() string {
	switch n := u.TotalActivity(); {
	case n == 0:
		return TierInactive
	case n <= 2:
		return TierNew
	case n <= 9:
		return TierModerate
	default:
		return TierActive
	}
}

// GameplayRecord is the normalized shape of one gameplayHistory document.
type GameplayRecord struct {
	ID                  string
	UserID              string
	UserName            string
	Difficulty          string // Easy, Normal, Hard
	Victory             bool
	Score               int
	Grade               string // A-F or "N/A"
	TimeTakenSeconds    int
	ObjectivesCompleted int
	TotalObjectives     int
	Timestamp           time.Time
}

func (g GameplayRecord) When() time.Time { return g.Timestamp }

// QuizRecord is the normalized shape of one quizHistory document. The
// per-question slices are positionally aligned: index i of
// AnswerCorrectness belongs to index i of QuestionTexts.
type QuizRecord struct {
	ID                 string
	UserID             string
	UserName           string
	Difficulty         string
	CorrectAnswers     int
	WrongAnswers       int
	TotalQuestions     int
	AnswerTexts        []string
	CorrectAnswerTexts []string
	QuestionTexts      []string
	AnswerCorrectness  []bool
	Timestamp          time.Time
	ScorePercent       int    // round(correct/total*100)
	Grade              string // derived from ScorePercent
}

func (q QuizRecord) When() time.Time { return q.Timestamp }

// AnswerDetail is one question of an attempt's answer review.
type AnswerDetail struct {
	Number        int // 1-based
	Question      string
	YourAnswer    string
	CorrectAnswer string
	Correct       bool
}

// AnswerDetails expands the positional answer slices into one entry per
// question. Missing texts fall back to the fixed display strings the
// review panel shows for older attempts that stored none.
func (q QuizRecord) AnswerDetails() []AnswerDetail {
	at := func(s []string, i int, def string) string {
		if i < len(s) && s[i] != "" {
			return s[i]
		}
		return def
	}
	out := make([]AnswerDetail, 0, q.TotalQuestions)
	for i := 0; i < q.TotalQuestions; i++ {
		out = append(out, AnswerDetail{
			Number:        i + 1,
			Question:      at(q.QuestionTexts, i, fmt.Sprintf("Question %d", i+1)),
			YourAnswer:    at(q.AnswerTexts, i, "No answer"),
			CorrectAnswer: at(q.CorrectAnswerTexts, i, "Unknown"),
			Correct:       i < len(q.AnswerCorrectness) && q.AnswerCorrectness[i],
		})
	}
	return out
}

// FeedbackRecord is the normalized shape of one feedbacks document.
type FeedbackRecord struct {
	ID        string
	UserID    string
	UserName  string
	Email     string
	Rating    int // 0-5
	Text      string
	Timestamp time.Time
}

func (f FeedbackRecord) When() time.Time { return f.Timestamp }

// CrashRecord is the normalized shape of one crashReports document.
// Both timestamps are opaque display strings written by the game client;
// they are never parsed, only shown.
type CrashRecord struct {
	ID              string
	UserID          string
	DisplayName     string
	ErrorMessage    string
	StackTrace      string
	LogType         string // Error, Exception, ...
	SceneName       string
	DeviceModel     string
	DeviceType      string
	OperatingSystem string
	LocalTime       string
	UTCTime         string
	IsTestCrash     bool
}

// AdminRecord is one document from the Admin collection.
type AdminRecord struct {
	ID           string
	UserID       string // application-level login identifier
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Role         string
}

// Authorized reports whether this record grants dashboard access.
func (a AdminRecord) Authorized() bool {
	return a.IsAdmin || a.Role == "admin"
}
