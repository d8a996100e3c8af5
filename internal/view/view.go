// Package view holds the presentation-side record plumbing shared by
// every dashboard page: in-memory filtering, newest-first sorting,
// fixed-size pagination and the per-widget load state machine.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/jishinalert/dashboard/internal/models"
)

// Predicate reports whether a record survives a filter.
type Predicate[T any] func(T) bool

// Timestamped is any record carrying a canonical instant.
type Timestamped interface {
	When() time.Time
}

// Filter applies every predicate conjunctively and returns the
// survivors in their original relative order. The input is never
// mutated, so predicate order does not affect the result.
func Filter[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// SortNewest returns a newest-first copy. The sort is stable so records
// sharing an instant keep their fetch order.
func SortNewest[T Timestamped](records []T) []T {
	out := make([]T, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].When().After(out[j].When())
	})
	return out
}

// SortOldest returns an oldest-first copy.
func SortOldest[T Timestamped](records []T) []T {
	out := make([]T, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].When().Before(out[j].When())
	})
	return out
}

// InWindow keeps records whose instant falls in [from, to).
func InWindow[T Timestamped](from, to time.Time) Predicate[T] {
	return func(r T) bool {
		w := r.When()
		return !w.Before(from) && w.Before(to)
	}
}

// UserSearch matches the query case-insensitively against a user's name
// or email. An empty query matches everything.
func UserSearch(query string) Predicate[models.UserRecord] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(u models.UserRecord) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q)
	}
}

// AgeBand matches users against one of the fixed age bands. Users
// without an age only match "all".
func AgeBand(band string) Predicate[models.UserRecord] {
	return func(u models.UserRecord) bool {
		if band == "" || band == "all" {
			return true
		}
		if u.Age == nil {
			return false
		}
		age := *u.Age
		switch band {
		case "under18":
			return age < 18
		case "18-19":
			return age >= 18 && age <= 19
		case "20-21":
			return age >= 20 && age <= 21
		case "22-25":
			return age >= 22 && age <= 25
		case "over25":
			return age > 25
		}
		return false
	}
}

// ActivityTier matches users against one activity tier.
func ActivityTier(tier string) Predicate[models.UserRecord] {
	return func(u models.UserRecord) bool {
		if tier == "" || tier == "all" {
			return true
		}
		return u.ActivityTier() == tier
	}
}

// Difficulty matches gameplay records against one difficulty.
func Difficulty(difficulty string) Predicate[models.GameplayRecord] {
	return func(g models.GameplayRecord) bool {
		if difficulty == "" || difficulty == "all" {
			return true
		}
		return g.Difficulty == difficulty
	}
}

// Result matches gameplay records on outcome: "victory" or "failed".
func Result(result string) Predicate[models.GameplayRecord] {
	return func(g models.GameplayRecord) bool {
		switch result {
		case "victory":
			return g.Victory
		case "failed":
			return !g.Victory
		default:
			return true
		}
	}
}

// QuizDifficulty matches quiz records against one difficulty.
func QuizDifficulty(difficulty string) Predicate[models.QuizRecord] {
	return func(q models.QuizRecord) bool {
		if difficulty == "" || difficulty == "all" {
			return true
		}
		return q.Difficulty == difficulty
	}
}

// LogType matches crash records against one log type.
func LogType(logType string) Predicate[models.CrashRecord] {
	return func(c models.CrashRecord) bool {
		if logType == "" || logType == "all" {
			return true
		}
		return c.LogType == logType
	}
}
