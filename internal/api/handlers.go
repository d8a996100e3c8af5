package api

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jishinalert/dashboard/internal/auth"
	"github.com/jishinalert/dashboard/internal/export"
	"github.com/jishinalert/dashboard/internal/logger"
	"github.com/jishinalert/dashboard/internal/services"
)

type Server struct {
	Dashboard *services.Dashboard
	Auth      *auth.Service
	Sessions  *auth.Sessions
	Templates *template.Template
}

type pageData map[string]any

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if _, ok := s.Sessions.Lookup(c.Value); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	s.render(w, r, "pages/login.html", pageData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID := strings.TrimSpace(r.FormValue("user_id"))
	password := r.FormValue("password")

	admin, appErr := s.Auth.Login(r.Context(), userID, password)
	if appErr != nil {
		log.Warn("login failed: %s", appErr.Code)
		s.render(w, r, "pages/login.html", pageData{
			"error":   appErr.Message,
			"user_id": userID,
		})
		return
	}

	sess := s.Sessions.Create(*admin)
	setSessionCookie(w, sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		s.Sessions.Destroy(c.Value)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleToggleTheme flips the theme cookie and returns to the page the
// toggle lives on.
func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := "dark"
	if themeFrom(r) == "dark" {
		theme = "light"
	}
	http.SetCookie(w, &http.Cookie{
		Name:   themeCookieName,
		Value:  theme,
		Path:   "/",
		MaxAge: 365 * 24 * 3600,
	})
	ref := r.Header.Get("Referer")
	if ref == "" {
		ref = "/"
	}
	http.Redirect(w, r, ref, http.StatusSeeOther)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering overview page")

	v := s.Dashboard.Overview(r.Context())
	s.render(w, r, "pages/overview.html", pageData{"view": v})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering users page")

	q := services.UsersQuery{
		Search:  strings.TrimSpace(r.URL.Query().Get("search")),
		AgeBand: r.URL.Query().Get("age"),
		Tier:    r.URL.Query().Get("tier"),
		Page:    pageParam(r),
	}
	v := s.Dashboard.Users(r.Context(), q)
	s.render(w, r, "pages/users.html", pageData{"view": v})
}

func (s *Server) handleGameplay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering gameplay page")

	q := services.GameplayQuery{
		Difficulty: r.URL.Query().Get("difficulty"),
		Result:     r.URL.Query().Get("result"),
		Page:       pageParam(r),
	}
	v := s.Dashboard.Gameplay(r.Context(), q)
	s.render(w, r, "pages/gameplay.html", pageData{"view": v})
}

func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering assessment page")

	q := services.AssessmentQuery{
		Difficulty: r.URL.Query().Get("difficulty"),
		Page:       pageParam(r),
	}
	v := s.Dashboard.Assessment(r.Context(), q)
	s.render(w, r, "pages/assessment.html", pageData{"view": v})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering feedback page")

	q := services.FeedbackQuery{
		Sort: r.URL.Query().Get("sort"),
		Page: pageParam(r),
	}
	v := s.Dashboard.Feedback(r.Context(), q)
	s.render(w, r, "pages/feedback.html", pageData{"view": v})
}

func (s *Server) handleCrashes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering crashes page")

	q := services.CrashesQuery{
		LogType: r.URL.Query().Get("logtype"),
		Page:    pageParam(r),
	}
	v := s.Dashboard.Crashes(r.Context(), q)
	s.render(w, r, "pages/crashes.html", pageData{"view": v})
}

func (s *Server) handleExportUsers(w http.ResponseWriter, r *http.Request) {
	s.exportCSV(w, r, "users", s.Dashboard.UsersCSV)
}

func (s *Server) handleExportGameplay(w http.ResponseWriter, r *http.Request) {
	s.exportCSV(w, r, "gameplay", s.Dashboard.GameplayCSV)
}

func (s *Server) handleExportFeedback(w http.ResponseWriter, r *http.Request) {
	s.exportCSV(w, r, "feedback", s.Dashboard.FeedbackCSV)
}

func (s *Server) handleExportCrashes(w http.ResponseWriter, r *http.Request) {
	s.exportCSV(w, r, "crashes", s.Dashboard.CrashesCSV)
}

// exportCSV streams one dataset as a CSV download. The rows buffer
// first so a failed fetch can still produce a clean error response.
func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request, dataset string, write func(context.Context, io.Writer) error) {
	log := logger.FromContext(r.Context())
	log.Info("exporting %s as CSV", dataset)

	var buf bytes.Buffer
	if err := write(r.Context(), &buf); err != nil {
		log.Error("failed to export %s: %v", dataset, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(dataset)))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["session"]; !ok {
		data["session"] = sessionFromContext(r.Context())
	}
	data["theme"] = themeFrom(r)

	log := logger.FromContext(r.Context())
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
