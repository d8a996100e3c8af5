// Package normalize converts raw store documents into canonical records.
// The game client wrote these documents from several versions with
// inconsistent field names, three timestamp encodings and plenty of
// missing fields, so every accessor substitutes a safe default instead of
// failing. A totally malformed document yields a fully-defaulted record,
// never an error.
package normalize

import (
	"math"
	"time"

	"github.com/jishinalert/dashboard/internal/store"
)

// Default display strings. These appear verbatim in the UI and in CSV
// exports, so they are part of the external contract.
const (
	DefaultUserName    = "Unknown"
	DefaultDisplayName = "Unknown User"
	DefaultEmail       = "No email"
	DefaultAnonymous   = "Anonymous"
	DefaultGuest       = "Guest"
	DefaultNoMessage   = "No message"
	DefaultNoFeedback  = "No feedback text"
	DefaultUnknown     = "Unknown"
	DefaultNA          = "N/A"
)

// timeLayouts are tried in order when a timestamp arrives as a string.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02",
}

// Timestamp resolves one of the three timestamp encodings into a single
// canonical instant: a native temporal value wins, then a parseable
// string, and when both are absent the record is stamped with now. The
// fallback is deliberate, observable behavior, not an error path.
func Timestamp(v any, now time.Time) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts
			}
		}
	}
	return now
}

// Grade bands a score percentage into a letter. The bands are
// intentionally non-uniform: A>=90, B>=80, C>=60, D>=40, F below.
func Grade(percent int) string {
	switch {
	case percent >= 90:
		return "A"
	case percent >= 80:
		return "B"
	case percent >= 60:
		return "C"
	case percent >= 40:
		return "D"
	default:
		return "F"
	}
}

// Percent returns round(part/total*100), or 0 when total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// DisplayName picks the user-visible name out of a user document,
// preferring displayName over the legacy name field.
func DisplayName(doc store.Document) string {
	if s := doc.String("displayName"); s != "" {
		return s
	}
	if s := doc.String("name"); s != "" {
		return s
	}
	return DefaultDisplayName
}

func str(data map[string]any, key, def string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return def
}

func num(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func boolean(data map[string]any, key string) bool {
	b, _ := data[key].(bool)
	return b
}

func strs(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, _ := v.(string)
		out = append(out, s)
	}
	return out
}

func bools(data map[string]any, key string) []bool {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]bool, 0, len(raw))
	for _, v := range raw {
		b, _ := v.(bool)
		out = append(out, b)
	}
	return out
}
