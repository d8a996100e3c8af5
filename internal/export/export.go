// Package export renders record lists as downloadable CSV files. The
// column layouts and cell formats match what admins already import into
// their spreadsheets, so they are part of the external contract.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jishinalert/dashboard/internal/models"
)

// Filename returns the download name for one dataset, e.g.
// "jishin-alert-users.csv".
func Filename(dataset string) string {
	return fmt.Sprintf("jishin-alert-%s.csv", dataset)
}

// FormatDate renders a timestamp for CSV cells.
func FormatDate(t time.Time) string {
	return t.Format("1/2/2006 3:04:05 PM")
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// sanitize flattens free-form text into a single CSV-friendly cell.
// Commas become semicolons and, when flattenNewlines is set, line breaks
// become spaces. The writer still quotes as needed; the substitution
// keeps the cells readable in spreadsheet tools that split on commas.
func sanitize(s string, flattenNewlines bool) string {
	s = strings.ReplaceAll(s, ",", ";")
	if flattenNewlines {
		s = strings.ReplaceAll(s, "\r\n", " ")
		s = strings.ReplaceAll(s, "\n", " ")
	}
	return s
}

// Users writes the user table.
func Users(w io.Writer, records []models.UserRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Email", "Age", "Games Played", "Quizzes Taken", "Feedback Given", "Total Activity", "Status"}); err != nil {
		return err
	}
	for _, u := range records {
		age := "N/A"
		if u.Age != nil {
			age = strconv.Itoa(*u.Age)
		}
		row := []string{
			sanitize(u.Name, false),
			sanitize(u.Email, false),
			age,
			strconv.Itoa(u.GamesPlayed),
			strconv.Itoa(u.QuizzesTaken),
			strconv.Itoa(u.FeedbacksGiven),
			strconv.Itoa(u.TotalActivity()),
			u.ActivityTier(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Gameplay writes the gameplay table.
func Gameplay(w io.Writer, records []models.GameplayRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "User", "Difficulty", "Result", "Score", "Grade", "Time", "Objectives"}); err != nil {
		return err
	}
	for _, g := range records {
		result := "Failed"
		if g.Victory {
			result = "Victory"
		}
		row := []string{
			FormatDate(g.Timestamp),
			sanitize(g.UserName, false),
			g.Difficulty,
			result,
			strconv.Itoa(g.Score),
			g.Grade,
			FormatDuration(g.TimeTakenSeconds),
			fmt.Sprintf("%d/%d", g.ObjectivesCompleted, g.TotalObjectives),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeQuoted emits one row with every field double-quoted. The
// feedback and crash exports always quote, even for plain fields;
// admins' existing spreadsheet imports depend on that shape.
func writeQuoted(w io.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\"%s\"", f); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Feedback writes the feedback table. Feedback text is free-form user
// input, so both commas and newlines are flattened.
func Feedback(w io.Writer, records []models.FeedbackRecord) error {
	if _, err := io.WriteString(w, "Date,User,Email,Rating,Feedback\n"); err != nil {
		return err
	}
	for _, f := range records {
		row := []string{
			FormatDate(f.Timestamp),
			f.UserName,
			f.Email,
			strconv.Itoa(f.Rating),
			sanitize(f.Text, true),
		}
		if err := writeQuoted(w, row); err != nil {
			return err
		}
	}
	return nil
}

// Crashes writes the crash-report table. The date column is the
// client's local-time display string, exported verbatim.
func Crashes(w io.Writer, records []models.CrashRecord) error {
	if _, err := io.WriteString(w, "Date,User,Type,Scene,Device,OS,Error Message\n"); err != nil {
		return err
	}
	for _, c := range records {
		row := []string{
			c.LocalTime,
			c.DisplayName,
			c.LogType,
			c.SceneName,
			c.DeviceModel,
			c.OperatingSystem,
			sanitize(c.ErrorMessage, false),
		}
		if err := writeQuoted(w, row); err != nil {
			return err
		}
	}
	return nil
}
