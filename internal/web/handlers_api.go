package web

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmylchreest/studio/internal/portfolio"
	"github.com/jmylchreest/studio/internal/theme"
	"github.com/jmylchreest/studio/internal/version"
)

const maxAdminBody = 4 << 10

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Short(),
	})
}

// handleAPIPortfolio handles GET /api/portfolio. ?type= narrows items but not tipos.
func (s *Server) handleAPIPortfolio(w http.ResponseWriter, r *http.Request) {
	res := s.portfolio.Collection(r.Context())
	if !res.Success {
		s.respondJSON(w, http.StatusBadGateway, res)
		return
	}
	res.Items = portfolio.FilterByType(res.Items, r.URL.Query().Get("type"))
	s.respondJSON(w, http.StatusOK, res)
}

// handleAPIPortfolioItem handles GET /api/portfolio/{id}.
func (s *Server) handleAPIPortfolioItem(w http.ResponseWriter, r *http.Request) {
	res := s.portfolio.Item(r.Context(), chi.URLParam(r, "id"))
	s.respondJSON(w, itemStatus(res), res)
}

type themeResponse struct {
	Success bool          `json:"success"`
	Theme   theme.Theme   `json:"theme"`
	Palette theme.Palette `json:"palette"`
	Image   string        `json:"image,omitempty"`
}

// handleAPITheme handles GET /api/portfolio/{id}/theme.
func (s *Server) handleAPITheme(w http.ResponseWriter, r *http.Request) {
	res := s.portfolio.Item(r.Context(), chi.URLParam(r, "id"))
	if !res.Success {
		s.respondJSON(w, itemStatus(res), res)
		return
	}

	mode := s.mode(w, r)
	thumb := res.Item.Thumbnail()
	t := s.themer.Compose(r.Context(), thumb, mode)
	if r.Context().Err() != nil {
		return
	}
	s.respondJSON(w, http.StatusOK, themeResponse{Success: true, Theme: t, Palette: t.Palette(), Image: thumb})
}

// handleAPIStatistics handles GET /api/statistics.
func (s *Server) handleAPIStatistics(w http.ResponseWriter, r *http.Request) {
	res := s.portfolio.Statistics(r.Context())
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadGateway
	}
	s.respondJSON(w, status, res)
}

// handleAPIColumns handles GET /api/columns.
func (s *Server) handleAPIColumns(w http.ResponseWriter, r *http.Request) {
	res := s.portfolio.Columns(r.Context())
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadGateway
	}
	s.respondJSON(w, status, res)
}

type adminRequest struct {
	Password string `json:"password"`
}

type adminResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Revision uint64 `json:"revision,omitempty"`
}

// handleAPIAdminAuth handles POST /api/admin/auth.
func (s *Server) handleAPIAdminAuth(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r) {
		return
	}
	s.respondJSON(w, http.StatusOK, adminResponse{Success: true, Message: "Authenticated."})
}

// handleAPIUpdateCache handles POST /api/admin/update-cache.
func (s *Server) handleAPIUpdateCache(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r) {
		return
	}
	if s.cache == nil {
		s.respondError(w, http.StatusInternalServerError, "cache invalidation is not configured")
		return
	}

	rev, err := s.cache.Invalidate(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, adminResponse{Success: true, Message: "Portfolio cache updated.", Revision: rev})
}

// authorize decodes the admin body and checks the password, writing the
// failure response itself.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) bool {
	var req adminRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBody)).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if !checkPassword(s.opts.AdminPassword, req.Password) {
		s.logger.Warn("admin authentication failed", "remote", r.RemoteAddr)
		s.respondError(w, http.StatusUnauthorized, "invalid password")
		return false
	}
	return true
}

// checkPassword compares in constant time. An unset password rejects everything.
func checkPassword(configured, given string) bool {
	if configured == "" {
		return false
	}
	want := sha256.Sum256([]byte(configured))
	got := sha256.Sum256([]byte(given))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

func itemStatus(res portfolio.ItemResult) int {
	switch {
	case res.Success:
		return http.StatusOK
	case res.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
