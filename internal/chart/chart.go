// Package chart builds the JSON configurations the dashboard's charts
// render from. The shapes follow the chart.js config format, which the
// front-end passes straight to the library.
package chart

import "github.com/jishinalert/dashboard/internal/models"

// Palette used across the charts, in success/info/warning/orange/danger
// order. Grade and difficulty slices index into it.
var palette = []string{"#10b981", "#3b82f6", "#f59e0b", "#f97316", "#ef4444"}

const lineColor = "#2563eb"

// Dataset is one plotted series.
type Dataset struct {
	Label           string   `json:"label,omitempty"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor,omitempty"`
	BorderColor     string   `json:"borderColor,omitempty"`
	BorderWidth     int      `json:"borderWidth,omitempty"`
	Fill            bool     `json:"fill,omitempty"`
	Tension         float64  `json:"tension,omitempty"`
}

// Data pairs axis labels with datasets.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Config is a complete chart configuration.
type Config struct {
	Type string `json:"type"`
	Data Data   `json:"data"`
}

// Difficulty builds the games-per-difficulty doughnut.
func Difficulty(s models.DifficultyStat) Config {
	return Config{
		Type: "doughnut",
		Data: Data{
			Labels: []string{"Easy", "Normal", "Hard"},
			Datasets: []Dataset{{
				Data:            []int{s.Easy, s.Normal, s.Hard},
				BackgroundColor: []string{palette[0], palette[2], palette[4]},
			}},
		},
	}
}

// Victory builds the outcome pie.
func Victory(s models.VictoryStat) Config {
	return Config{
		Type: "pie",
		Data: Data{
			Labels: []string{"Victories", "Failures"},
			Datasets: []Dataset{{
				Data:            []int{s.Victories, s.Failures},
				BackgroundColor: []string{palette[0], palette[4]},
			}},
		},
	}
}

// AvgScore builds the average-score-per-difficulty bar chart.
func AvgScore(s models.AvgScoreStat) Config {
	return Config{
		Type: "bar",
		Data: Data{
			Labels: []string{"Easy", "Normal", "Hard"},
			Datasets: []Dataset{{
				Label:           "Average Score",
				Data:            []int{s.Easy, s.Normal, s.Hard},
				BackgroundColor: []string{palette[0], palette[2], palette[4]},
			}},
		},
	}
}

// Activity builds the 7-day activity line chart.
func Activity(points []models.ActivityPoint) Config {
	labels := make([]string, 0, len(points))
	data := make([]int, 0, len(points))
	for _, p := range points {
		labels = append(labels, p.Date)
		data = append(data, p.Count)
	}
	return Config{
		Type: "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:       "Games Played",
				Data:        data,
				BorderColor: lineColor,
				BorderWidth: 2,
				Fill:        true,
				Tension:     0.3,
			}},
		},
	}
}

// Grades builds a grade-distribution chart. The assessment page renders
// it as a bar chart, the gameplay page as a doughnut.
func Grades(dist models.GradeDistribution, chartType string) Config {
	labels := make([]string, 0, len(dist.Buckets))
	data := make([]int, 0, len(dist.Buckets))
	colors := make([]string, 0, len(dist.Buckets))
	for i, b := range dist.Buckets {
		labels = append(labels, b.Grade)
		data = append(data, b.Count)
		colors = append(colors, palette[i%len(palette)])
	}
	return Config{
		Type: chartType,
		Data: Data{
			Labels:   labels,
			Datasets: []Dataset{{Data: data, BackgroundColor: colors}},
		},
	}
}
