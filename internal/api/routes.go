package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.sessionMiddleware)

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Post("/theme", s.handleToggleTheme)

	r.Get("/", s.handleOverview)
	r.Get("/users", s.handleUsers)
	r.Get("/gameplay", s.handleGameplay)
	r.Get("/assessment", s.handleAssessment)
	r.Get("/feedback", s.handleFeedback)
	r.Get("/crashes", s.handleCrashes)

	r.Get("/export/users", s.handleExportUsers)
	r.Get("/export/gameplay", s.handleExportGameplay)
	r.Get("/export/feedback", s.handleExportFeedback)
	r.Get("/export/crashes", s.handleExportCrashes)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}
