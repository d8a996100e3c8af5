package services

import (
	"context"
	"io"
	"time"

	"github.com/jishinalert/dashboard/internal/chart"
	apperrors "github.com/jishinalert/dashboard/internal/errors"
	"github.com/jishinalert/dashboard/internal/export"
	"github.com/jishinalert/dashboard/internal/logger"
	"github.com/jishinalert/dashboard/internal/models"
	"github.com/jishinalert/dashboard/internal/stats"
	"github.com/jishinalert/dashboard/internal/view"

	"golang.org/x/sync/errgroup"
)

// Dashboard serves every page's data. Each dataset keeps a view.State so
// a slow fetch kicked off by an earlier request can never overwrite the
// records a later request already installed.
type Dashboard struct {
	loader        *Loader
	log           *logger.Logger
	activityLimit int

	users    *view.State[models.UserRecord]
	gameplay *view.State[models.GameplayRecord]
	quizzes  *view.State[models.QuizRecord]
	feedback *view.State[models.FeedbackRecord]
	crashes  *view.State[models.CrashRecord]
}

// NewDashboard builds the dashboard service. activityLimit caps the
// overview's recent-activity feed.
func NewDashboard(loader *Loader, activityLimit int) *Dashboard {
	return &Dashboard{
		loader:        loader,
		log:           logger.Default().WithPrefix("dashboard"),
		activityLimit: activityLimit,
		users:         view.NewState[models.UserRecord](),
		gameplay:      view.NewState[models.GameplayRecord](),
		quizzes:       view.NewState[models.QuizRecord](),
		feedback:      view.NewState[models.FeedbackRecord](),
		crashes:       view.NewState[models.CrashRecord](),
	}
}

// refresh runs one fetch through a dataset's state machine and returns
// the freshest accepted snapshot. On failure the previous records come
// back alongside the error so pages can render stale data with an
// inline notice.
func refresh[T any](ctx context.Context, state *view.State[T], load func(context.Context) ([]T, error)) ([]T, error) {
	gen := state.Begin()
	records, err := load(ctx)
	if err != nil {
		state.Fail(gen, err)
	} else {
		state.Complete(gen, records)
	}
	snap := state.Snapshot()
	return snap.Records, snap.Err
}

// OverviewView is everything the overview page renders. Widget errors
// are isolated: a failed dataset disables its widgets and leaves the
// rest of the page intact.
type OverviewView struct {
	Stats    models.OverviewStat
	StatsErr *apperrors.AppError

	ActivityChart chart.Config
	ActivityErr   *apperrors.AppError

	DifficultyChart chart.Config
	VictoryChart    chart.Config
	AvgScoreChart   chart.Config

	Recent    []models.ActivityEvent
	RecentErr *apperrors.AppError
}

// Overview loads the three datasets behind the overview concurrently
// and assembles the page.
func (d *Dashboard) Overview(ctx context.Context) OverviewView {
	var (
		users    []models.UserRecord
		gameplay []models.GameplayRecord
		quizzes  []models.QuizRecord
		uErr     error
		gErr     error
		qErr     error
	)

	// Each goroutine records its own failure instead of aborting the
	// group; the page renders whatever loaded.
	g := new(errgroup.Group)
	g.Go(func() error { users, uErr = refresh(ctx, d.users, d.loader.Users); return nil })
	g.Go(func() error { gameplay, gErr = refresh(ctx, d.gameplay, d.loader.Gameplay); return nil })
	g.Go(func() error { quizzes, qErr = refresh(ctx, d.quizzes, d.loader.Quizzes); return nil })
	_ = g.Wait()

	var v OverviewView
	if err := firstErr(uErr, gErr, qErr); err != nil {
		v.StatsErr = apperrors.NewFetchError("statistics", err)
		d.log.Error("overview statistics degraded: %v", err)
	}
	v.Stats = models.OverviewStat{
		TotalUsers:   len(users),
		TotalGames:   len(gameplay),
		TotalQuizzes: len(quizzes),
		AvgScore:     stats.AverageScore(gameplay),
	}

	if gErr != nil {
		v.ActivityErr = apperrors.NewFetchError("activity chart", gErr)
	}
	v.ActivityChart = chart.Activity(stats.ActivityHistogram(gameplay, time.Now()))
	v.DifficultyChart = chart.Difficulty(stats.DifficultyCounts(gameplay))
	v.VictoryChart = chart.Victory(stats.VictoryCounts(gameplay))
	v.AvgScoreChart = chart.AvgScore(stats.AverageScoreByDifficulty(gameplay))

	if err := firstErr(gErr, qErr); err != nil {
		v.RecentErr = apperrors.NewFetchError("recent activity", err)
	}
	v.Recent = stats.RecentActivity(gameplay, quizzes, d.activityLimit)
	return v
}

// UsersQuery carries the users page's request parameters.
type UsersQuery struct {
	Search  string
	AgeBand string
	Tier    string
	Page    int
}

// UsersView is the users page.
type UsersView struct {
	Page  view.Page[models.UserRecord]
	Query UsersQuery
	Err   *apperrors.AppError
}

// Users loads, filters and paginates the user table.
func (d *Dashboard) Users(ctx context.Context, q UsersQuery) UsersView {
	records, err := refresh(ctx, d.users, d.loader.Users)
	v := UsersView{Query: q}
	if err != nil {
		v.Err = apperrors.NewFetchError("users", err)
	}
	filtered := view.Filter(records,
		view.UserSearch(q.Search),
		view.AgeBand(q.AgeBand),
		view.ActivityTier(q.Tier),
	)
	if len(filtered) != len(records) {
		d.users.MarkFiltered()
	}
	v.Page = view.Paginate(filtered, q.Page)
	return v
}

// GameplayQuery carries the gameplay page's request parameters.
type GameplayQuery struct {
	Difficulty string
	Result     string
	Page       int
}

// GameplayView is the gameplay page: charts over the filtered set plus
// the paginated table.
type GameplayView struct {
	DifficultyChart chart.Config
	VictoryChart    chart.Config
	AvgScoreChart   chart.Config
	GradeChart      chart.Config
	Page            view.Page[models.GameplayRecord]
	Query           GameplayQuery
	Err             *apperrors.AppError
}

// Gameplay loads, filters and paginates gameplay history.
func (d *Dashboard) Gameplay(ctx context.Context, q GameplayQuery) GameplayView {
	records, err := refresh(ctx, d.gameplay, d.loader.Gameplay)
	v := GameplayView{Query: q}
	if err != nil {
		v.Err = apperrors.NewFetchError("gameplay history", err)
	}
	filtered := view.Filter(records,
		view.Difficulty(q.Difficulty),
		view.Result(q.Result),
	)
	if len(filtered) != len(records) {
		d.gameplay.MarkFiltered()
	}

	v.DifficultyChart = chart.Difficulty(stats.DifficultyCounts(filtered))
	v.VictoryChart = chart.Victory(stats.VictoryCounts(filtered))
	v.AvgScoreChart = chart.AvgScore(stats.AverageScoreByDifficulty(filtered))
	v.GradeChart = chart.Grades(stats.GradeDistribution(stats.GameplayGrades(filtered, "all")), "doughnut")
	v.Page = view.Paginate(view.SortNewest(filtered), q.Page)
	return v
}

// AssessmentQuery carries the assessment page's request parameters.
// Difficulty selects the tab and defaults to Easy.
type AssessmentQuery struct {
	Difficulty string
	Page       int
}

// AssessmentView is the quiz-assessment page for one difficulty tab.
type AssessmentView struct {
	Stats      models.QuizStat
	Questions  []models.QuestionStat
	GradeChart chart.Config
	Page       view.Page[models.QuizRecord]
	Query      AssessmentQuery
	Err        *apperrors.AppError
}

// Assessment loads quiz history and assembles one difficulty's view.
func (d *Dashboard) Assessment(ctx context.Context, q AssessmentQuery) AssessmentView {
	if q.Difficulty == "" {
		q.Difficulty = "Easy"
	}
	records, err := refresh(ctx, d.quizzes, d.loader.Quizzes)
	v := AssessmentView{Query: q}
	if err != nil {
		v.Err = apperrors.NewFetchError("quiz history", err)
	}

	filtered := view.SortNewest(view.Filter(records, view.QuizDifficulty(q.Difficulty)))
	if len(filtered) != len(records) {
		d.quizzes.MarkFiltered()
	}

	v.Stats = stats.QuizStats(filtered)
	v.Questions = stats.QuestionStats(filtered)
	v.GradeChart = chart.Grades(stats.GradeDistribution(stats.QuizGrades(records, q.Difficulty)), "bar")
	v.Page = view.Paginate(filtered, q.Page)
	return v
}

// FeedbackQuery carries the feedback page's request parameters. Sort is
// "desc" (newest first, the default) or "asc".
type FeedbackQuery struct {
	Sort string
	Page int
}

// FeedbackView is the feedback page.
type FeedbackView struct {
	Stats models.FeedbackStat
	Page  view.Page[models.FeedbackRecord]
	Query FeedbackQuery
	Err   *apperrors.AppError
}

// Feedback loads and paginates player feedback in the requested order.
func (d *Dashboard) Feedback(ctx context.Context, q FeedbackQuery) FeedbackView {
	if q.Sort != "asc" {
		q.Sort = "desc"
	}
	records, err := refresh(ctx, d.feedback, d.loader.Feedback)
	v := FeedbackView{Query: q}
	if err != nil {
		v.Err = apperrors.NewFetchError("feedback", err)
	}
	v.Stats = stats.FeedbackStats(records, time.Now())
	sorted := view.SortNewest(records)
	if q.Sort == "asc" {
		sorted = view.SortOldest(records)
	}
	v.Page = view.Paginate(sorted, q.Page)
	return v
}

// CrashesQuery carries the crashes page's request parameters.
type CrashesQuery struct {
	LogType string
	Page    int
}

// CrashesView is the crash-reports page.
type CrashesView struct {
	Page  view.Page[models.CrashRecord]
	Query CrashesQuery
	Err   *apperrors.AppError
}

// Crashes loads and paginates crash reports. The store already returns
// them newest first; only the log-type filter applies here.
func (d *Dashboard) Crashes(ctx context.Context, q CrashesQuery) CrashesView {
	records, err := refresh(ctx, d.crashes, d.loader.Crashes)
	v := CrashesView{Query: q}
	if err != nil {
		v.Err = apperrors.NewFetchError("crash reports", err)
	}
	filtered := view.Filter(records, view.LogType(q.LogType))
	if len(filtered) != len(records) {
		d.crashes.MarkFiltered()
	}
	v.Page = view.Paginate(filtered, q.Page)
	return v
}

// UsersCSV streams the full user table as CSV.
func (d *Dashboard) UsersCSV(ctx context.Context, w io.Writer) error {
	records, err := d.loader.Users(ctx)
	if err != nil {
		return apperrors.NewFetchError("users", err)
	}
	return export.Users(w, records)
}

// GameplayCSV streams the full gameplay table as CSV, newest first.
func (d *Dashboard) GameplayCSV(ctx context.Context, w io.Writer) error {
	records, err := d.loader.Gameplay(ctx)
	if err != nil {
		return apperrors.NewFetchError("gameplay history", err)
	}
	return export.Gameplay(w, view.SortNewest(records))
}

// FeedbackCSV streams the full feedback table as CSV, newest first.
func (d *Dashboard) FeedbackCSV(ctx context.Context, w io.Writer) error {
	records, err := d.loader.Feedback(ctx)
	if err != nil {
		return apperrors.NewFetchError("feedback", err)
	}
	return export.Feedback(w, view.SortNewest(records))
}

// CrashesCSV streams the crash-report table as CSV.
func (d *Dashboard) CrashesCSV(ctx context.Context, w io.Writer) error {
	records, err := d.loader.Crashes(ctx)
	if err != nil {
		return apperrors.NewFetchError("crash reports", err)
	}
	return export.Crashes(w, records)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
