package handler

import (
	"log/slog"
	"net/http"

	"github.com/nsharda/newscheck/internal/auth"
)

// PageHandler renders the pages that carry no form logic of their own.
type PageHandler struct {
	logger *slog.Logger
}

func NewPageHandler(logger *slog.Logger) *PageHandler {
	return &PageHandler{logger: logger}
}

// Landing is public; it shows login state when a session rode in on the
// request.
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	ac, loggedIn := auth.FromContext(r.Context())
	render(w, h.logger, "landing.html", map[string]any{
		"LoggedIn": loggedIn,
		"UserName": ac.Name,
	})
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, "index.html", map[string]any{
		"UserName": auth.UserName(r.Context()),
	})
}
