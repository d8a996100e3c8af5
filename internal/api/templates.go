package api

import (
	"encoding/json"
	"html/template"
	"path/filepath"
	"time"

	"github.com/jishinalert/dashboard/internal/export"
	"github.com/jishinalert/dashboard/internal/stats"
)

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"min": func(a, b int) int {
			if a < b {
				return a
			}
			return b
		},
		"max": func(a, b int) int {
			if a > b {
				return a
			}
			return b
		},
		// seq returns a sequence of integers from start to end inclusive.
		"seq": func(start, end int) []int {
			if end < start {
				return []int{}
			}
			nums := make([]int, 0, end-start+1)
			for i := start; i <= end; i++ {
				nums = append(nums, i)
			}
			return nums
		},
		// json marshals a value for inline chart configs. template.JS keeps
		// the auto-escaper from quoting it inside <script> blocks.
		"json": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
		"formatDate": func(t time.Time) string {
			return export.FormatDate(t)
		},
		"formatDuration": func(seconds int) string {
			return export.FormatDuration(seconds)
		},
		"timeAgo": func(t time.Time) string {
			return stats.TimeAgo(t, time.Now())
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		"web/templates/layouts/*.html",
		"web/templates/pages/*.html",
		"web/templates/partials/*.html",
	}
	for _, p := range patterns {
		if matches, _ := filepath.Glob(p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseGlob(p); err != nil {
			return nil, err
		}
	}

	return t, nil
}
