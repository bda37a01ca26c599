package web

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"

	"github.com/jmylchreest/studio/internal/theme"
	"github.com/jmylchreest/studio/internal/web/templates"
)

// respondJSON writes a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Success: false, Error: message})
}

// mode resolves the request's theme mode and persists an explicit ?mode= choice.
func (s *Server) mode(w http.ResponseWriter, r *http.Request) theme.Mode {
	m := theme.ModeFromRequest(r, s.opts.DefaultMode)
	if _, ok := theme.ParseMode(r.URL.Query().Get("mode")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     theme.ModeCookie,
			Value:    string(m),
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Add("Vary", "Cookie, Sec-CH-Prefers-Color-Scheme")
	return m
}

// renderPage writes body inside the layout.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page templates.Page, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Layout(page, body).Render(r.Context(), w); err != nil {
		s.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}

// notModified returns the validator for key and reports whether the client
// copy is current, in which case 304 has been written. The validator is only
// attached to the response by cacheable.
func (s *Server) notModified(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	etag := s.cache.ETag(key)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		cacheable(w, etag)
		w.WriteHeader(http.StatusNotModified)
		return etag, true
	}
	return etag, false
}

// cacheable marks a successful page as revalidatable under etag.
func cacheable(w http.ResponseWriter, etag string) {
	if etag == "" {
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
}

// uncacheable keeps error pages out of caches so they are not revalidated
// into a 304 once the upstream recovers.
func uncacheable(w http.ResponseWriter) {
	w.Header().Del("ETag")
	w.Header().Set("Cache-Control", "no-store")
}
