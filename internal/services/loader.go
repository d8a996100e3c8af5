// Package services assembles page-ready views from the document store:
// it loads and normalizes the raw collections, computes the widget
// statistics and applies the request's filters and pagination.
package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jishinalert/dashboard/internal/logger"
	"github.com/jishinalert/dashboard/internal/models"
	"github.com/jishinalert/dashboard/internal/normalize"
	"github.com/jishinalert/dashboard/internal/store"
)

// Collection names in the backing store.
const (
	colUsers    = "users"
	colGameplay = "gameplayHistory"
	colQuizzes  = "quizHistory"
	colFeedback = "feedbacks"
	colCrashes  = "crashReports"
)

// loaderConcurrency caps the per-user fan-out when walking sub-collections.
const loaderConcurrency = 8

// Loader reads and normalizes the store's collections.
type Loader struct {
	store      store.Store
	log        *logger.Logger
	crashLimit int
	now        func() time.Time
}

// NewLoader builds a Loader. crashLimit caps how many crash reports one
// fetch pulls down.
func NewLoader(s store.Store, crashLimit int) *Loader {
	return &Loader{
		store:      s,
		log:        logger.Default().WithPrefix("loader"),
		crashLimit: crashLimit,
		now:        time.Now,
	}
}

// Users loads every user with the related counts recomputed from the
// gameplay and quiz sub-collections and the feedbacks collection. The
// per-user counting fans out concurrently.
func (l *Loader) Users(ctx context.Context) ([]models.UserRecord, error) {
	docs, err := l.store.Collection(colUsers).Documents(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.UserRecord, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loaderConcurrency)
	for i, doc := range docs {
		g.Go(func() error {
			u := normalize.User(doc)
			ref := l.store.Collection(colUsers).Doc(doc.ID)

			games, err := ref.Collection(colGameplay).Count(gctx)
			if err != nil {
				return err
			}
			quizzes, err := ref.Collection(colQuizzes).Count(gctx)
			if err != nil {
				return err
			}
			feedbacks, err := l.store.Collection(colFeedback).Where("userId", doc.ID).Count(gctx)
			if err != nil {
				return err
			}

			u.GamesPlayed = games
			u.QuizzesTaken = quizzes
			u.FeedbacksGiven = feedbacks
			records[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	l.log.Debug("loaded %d users", len(records))
	return records, nil
}

// Gameplay loads every user's gameplay history, carrying the resolved
// display name on each record.
func (l *Loader) Gameplay(ctx context.Context) ([]models.GameplayRecord, error) {
	return loadPerUser(ctx, l, colGameplay, normalize.Gameplay)
}

// Quizzes loads every user's quiz history.
func (l *Loader) Quizzes(ctx context.Context) ([]models.QuizRecord, error) {
	return loadPerUser(ctx, l, colQuizzes, normalize.Quiz)
}

// loadPerUser walks one sub-collection across all users concurrently.
func loadPerUser[T any](ctx context.Context, l *Loader, sub string, norm func(store.Document, string, string, time.Time) T) ([]T, error) {
	users, err := l.store.Collection(colUsers).Documents(ctx)
	if err != nil {
		return nil, err
	}

	now := l.now()
	perUser := make([][]T, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loaderConcurrency)
	for i, user := range users {
		g.Go(func() error {
			name := normalize.DisplayName(user)
			docs, err := l.store.Collection(colUsers).Doc(user.ID).Collection(sub).Documents(gctx)
			if err != nil {
				return err
			}
			out := make([]T, 0, len(docs))
			for _, doc := range docs {
				out = append(out, norm(doc, user.ID, name, now))
			}
			perUser[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []T
	for _, batch := range perUser {
		records = append(records, batch...)
	}
	l.log.Debug("loaded %d %s records across %d users", len(records), sub, len(users))
	return records, nil
}

// Feedback loads the feedbacks collection.
func (l *Loader) Feedback(ctx context.Context) ([]models.FeedbackRecord, error) {
	docs, err := l.store.Collection(colFeedback).Documents(ctx)
	if err != nil {
		return nil, err
	}
	now := l.now()
	records := make([]models.FeedbackRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, normalize.Feedback(doc, now))
	}
	return records, nil
}

// Crashes loads the newest crash reports, ordered by the client's UTC
// timestamp string and capped at the configured limit.
func (l *Loader) Crashes(ctx context.Context) ([]models.CrashRecord, error) {
	docs, err := l.store.Collection(colCrashes).
		OrderBy("timestampUTC", store.Desc).
		Limit(l.crashLimit).
		Documents(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.CrashRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, normalize.Crash(doc))
	}
	return records, nil
}
