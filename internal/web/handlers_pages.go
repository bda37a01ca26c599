package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmylchreest/studio/internal/portfolio"
	"github.com/jmylchreest/studio/internal/theme"
	"github.com/jmylchreest/studio/internal/web/templates"
)

const (
	featuredCount = 6
	relatedCount  = 3
)

func (s *Server) page(w http.ResponseWriter, r *http.Request, title string) templates.Page {
	return templates.Page{
		Title: title,
		Path:  r.URL.Path,
		Theme: theme.Fallback(s.mode(w, r)),
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page := s.page(w, r, "")
	res := s.portfolio.Collection(r.Context())

	data := templates.HomeData{Error: res.Error}
	if res.Success {
		stats := portfolio.Summarize(res.Items)
		data.Statistics = &stats
		data.Featured = res.Items
		if len(data.Featured) > featuredCount {
			data.Featured = data.Featured[:featuredCount]
		}
	}
	s.renderPage(w, r, http.StatusOK, page, templates.Home(data))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, s.page(w, r, "About"), templates.About())
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, s.page(w, r, "Services"), templates.Services())
}

func (s *Server) handleBriefing(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, s.page(w, r, "Briefing"), templates.Briefing(s.opts.BriefingURL))
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	s.renderPage(w, r, http.StatusOK, s.page(w, r, "Admin"), templates.Admin())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusNotFound, s.page(w, r, "Not found"), templates.NotFound("This page does not exist."))
}

// handlePortfolio renders the listing with an optional ?type= filter.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	page := s.page(w, r, "Portfolio")
	etag, fresh := s.notModified(w, r, "portfolio-"+string(page.Theme.Mode)+"-"+r.URL.Query().Get("type"))
	if fresh {
		return
	}

	res := s.portfolio.Collection(r.Context())
	if !res.Success {
		uncacheable(w)
		s.renderPage(w, r, http.StatusBadGateway, page, templates.PortfolioList(templates.ListData{Error: res.Error}))
		return
	}

	active := r.URL.Query().Get("type")
	cacheable(w, etag)
	s.renderPage(w, r, http.StatusOK, page, templates.PortfolioList(templates.ListData{
		Items:      portfolio.FilterByType(res.Items, active),
		Types:      res.Types,
		ActiveType: active,
	}))
}

// handlePortfolioDetail renders one project themed from its thumbnail.
func (s *Server) handlePortfolioDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	mode := s.mode(w, r)
	etag, fresh := s.notModified(w, r, "portfolio-"+string(mode)+"-"+id)
	if fresh {
		return
	}

	page := templates.Page{Path: r.URL.Path, Theme: theme.Fallback(mode)}

	res := s.portfolio.Collection(r.Context())
	if !res.Success {
		uncacheable(w)
		s.renderPage(w, r, http.StatusBadGateway, page, templates.Error(res.Error))
		return
	}

	found := s.portfolio.ItemFrom(res.Items, id)
	if found.NotFound {
		page.Title = "Not found"
		uncacheable(w)
		s.renderPage(w, r, http.StatusNotFound, page, templates.NotFound("This project does not exist."))
		return
	}
	item := *found.Item

	page.Title = item.Title
	page.Theme = s.themer.Compose(r.Context(), item.Thumbnail(), mode)
	// The client is gone; nothing to publish the theme to.
	if r.Context().Err() != nil {
		return
	}

	cacheable(w, etag)
	s.renderPage(w, r, http.StatusOK, page, templates.PortfolioDetail(templates.DetailData{
		Item:    item,
		Related: related(res.Items, item),
	}))
}

// related returns up to relatedCount other items of the same type.
func related(items []portfolio.Item, item portfolio.Item) []portfolio.Item {
	if item.Type == "" {
		return nil
	}
	var out []portfolio.Item
	for _, other := range portfolio.FilterByType(items, item.Type) {
		if other.ID == item.ID {
			continue
		}
		out = append(out, other)
		if len(out) == relatedCount {
			break
		}
	}
	return out
}
