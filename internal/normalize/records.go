package normalize

import (
	"time"

	"github.com/jishinalert/dashboard/internal/models"
	"github.com/jishinalert/dashboard/internal/store"
)

// User normalizes one document from the users collection. The related
// counts (games, quizzes, feedback) are filled in by the loader, which
// recomputes them from the sub-collections on every fetch.
func User(doc store.Document) models.UserRecord {
	u := models.UserRecord{
		ID:    doc.ID,
		Name:  str(doc.Data, "displayName", str(doc.Data, "name", DefaultUserName)),
		Email: str(doc.Data, "email", DefaultEmail),
	}
	if age := num(doc.Data, "age"); age > 0 {
		u.Age = &age
	}
	if t, ok := doc.Data["createdAt"]; ok {
		created := Timestamp(t, time.Time{})
		if !created.IsZero() {
			u.CreatedAt = &created
		}
	}
	return u
}

// Gameplay normalizes one gameplayHistory document. The parent user's
// id and resolved display name travel with the record so list views
// never re-join against the users collection.
func Gameplay(doc store.Document, userID, userName string, now time.Time) models.GameplayRecord {
	return models.GameplayRecord{
		ID:                  doc.ID,
		UserID:              userID,
		UserName:            userName,
		Difficulty:          str(doc.Data, "gameMode", "Normal"),
		Victory:             boolean(doc.Data, "victory"),
		Score:               num(doc.Data, "finalScore"),
		Grade:               str(doc.Data, "overallGrade", DefaultNA),
		TimeTakenSeconds:    num(doc.Data, "timeTaken"),
		ObjectivesCompleted: num(doc.Data, "objectivesCompleted"),
		TotalObjectives:     num(doc.Data, "totalObjectives"),
		Timestamp:           Timestamp(doc.Data["timestamp"], now),
	}
}

// Quiz normalizes one quizHistory document and derives the score
// percentage and letter grade.
func Quiz(doc store.Document, userID, userName string, now time.Time) models.QuizRecord {
	q := models.QuizRecord{
		ID:                 doc.ID,
		UserID:             userID,
		UserName:           userName,
		Difficulty:         str(doc.Data, "difficulty", "Easy"),
		CorrectAnswers:     num(doc.Data, "correctAnswers"),
		WrongAnswers:       num(doc.Data, "wrongAnswers"),
		TotalQuestions:     num(doc.Data, "totalQuestions"),
		AnswerTexts:        strs(doc.Data, "answerTexts"),
		CorrectAnswerTexts: strs(doc.Data, "correctAnswerTexts"),
		QuestionTexts:      strs(doc.Data, "questionTexts"),
		AnswerCorrectness:  bools(doc.Data, "answerCorrectness"),
		Timestamp:          Timestamp(doc.Data["timestamp"], now),
	}
	if q.TotalQuestions == 0 {
		q.TotalQuestions = 5
	}
	q.ScorePercent = Percent(q.CorrectAnswers, q.TotalQuestions)
	q.Grade = Grade(q.ScorePercent)
	return q
}

// Feedback normalizes one document from the feedbacks collection. The
// game client has written the text under three different field names
// over time; the oldest documents also carry only a philippinesTime
// string instead of a timestamp.
func Feedback(doc store.Document, now time.Time) models.FeedbackRecord {
	ts, ok := doc.Data["timestamp"]
	if !ok {
		ts = doc.Data["philippinesTime"]
	}
	text := str(doc.Data, "comments",
		str(doc.Data, "feedback",
			str(doc.Data, "test", DefaultNoFeedback)))
	return models.FeedbackRecord{
		ID:        doc.ID,
		UserID:    str(doc.Data, "userId", DefaultUnknown),
		UserName:  str(doc.Data, "userName", str(doc.Data, "displayName", DefaultAnonymous)),
		Email:     str(doc.Data, "email", DefaultNA),
		Rating:    num(doc.Data, "rating"),
		Text:      text,
		Timestamp: Timestamp(ts, now),
	}
}

// Crash normalizes one crashReports document. Both timestamps stay as
// opaque display strings; they are shown, never parsed.
func Crash(doc store.Document) models.CrashRecord {
	return models.CrashRecord{
		ID:              doc.ID,
		UserID:          str(doc.Data, "userId", DefaultUnknown),
		DisplayName:     str(doc.Data, "displayName", DefaultGuest),
		ErrorMessage:    str(doc.Data, "errorMessage", DefaultNoMessage),
		StackTrace:      str(doc.Data, "stackTrace", ""),
		LogType:         str(doc.Data, "logType", "Error"),
		SceneName:       str(doc.Data, "sceneName", DefaultUnknown),
		DeviceModel:     str(doc.Data, "deviceModel", DefaultUnknown),
		DeviceType:      str(doc.Data, "deviceType", DefaultUnknown),
		OperatingSystem: str(doc.Data, "operatingSystem", DefaultUnknown),
		LocalTime:       str(doc.Data, "timestamp", DefaultNA),
		UTCTime:         str(doc.Data, "timestampUTC", DefaultNA),
		IsTestCrash:     boolean(doc.Data, "isTestCrash"),
	}
}

// Admin normalizes one document from the Admin collection.
func Admin(doc store.Document) models.AdminRecord {
	return models.AdminRecord{
		ID:           doc.ID,
		UserID:       str(doc.Data, "userID", ""),
		Email:        str(doc.Data, "email", ""),
		DisplayName:  str(doc.Data, "displayName", "Admin"),
		PasswordHash: str(doc.Data, "passwordHash", ""),
		IsAdmin:      boolean(doc.Data, "isAdmin"),
		Role:         str(doc.Data, "role", ""),
	}
}
