package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/studio/internal/portfolio"
)

func TestStaticPages(t *testing.T) {
	env := newTestEnv(t)

	for path, want := range map[string]string{
		"/":         "Selected work",
		"/about":    "<h1>About</h1>",
		"/services": "<h1>Services</h1>",
		"/briefing": `src="https://forms.example.com/b"`,
		"/admin":    "/api/admin/update-cache",
	} {
		w := env.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"), path)
		assert.Contains(t, w.Body.String(), want, path)
		assert.Contains(t, w.Body.String(), "--theme-bg: #121212;", path)
	}
}

func TestHomeShowsStatistics(t *testing.T) {
	w := newTestEnv(t).do(http.MethodGet, "/", "")
	body := w.Body.String()
	assert.Contains(t, body, "<strong>3</strong><span>projects</span>")
	assert.Contains(t, body, "<strong>2</strong><span>clients</span>")
}

func TestPortfolioPage(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/portfolio", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Poster &lt;Series&gt;")
	assert.Contains(t, body, `href="/portfolio?type=Editorial"`)
	assert.Contains(t, body, `href="/portfolio/i-2"`)
	assert.NotEmpty(t, w.Header().Get("ETag"))

	w = env.do(http.MethodGet, "/portfolio?type=Editorial", "")
	body = w.Body.String()
	assert.Contains(t, body, "Annual Report")
	assert.NotContains(t, body, "Rebrand")
}

func TestPortfolioPageError(t *testing.T) {
	env := newTestEnv(t)
	env.data.err = "coda list rows: HTTP 401: Bad token"

	w := env.do(http.MethodGet, "/portfolio", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "coda list rows: HTTP 401: Bad token")
}

func TestPortfolioDetailThemed(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/portfolio/i-1", "", "Sec-CH-Prefers-Color-Scheme", "light")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Equal(t, "https://cdn.example.com/1.jpg", env.themer.gotURL)
	assert.Equal(t, "light", string(env.themer.gotMode))
	assert.Contains(t, body, "--theme-bg: #1b366d;")
	assert.Contains(t, body, "<h1>Poster &lt;Series&gt;</h1>")
	// Related work of the same type.
	assert.Contains(t, body, `href="/portfolio/i-3"`)
	assert.NotContains(t, body, `href="/portfolio/i-2"`)
}

func TestPortfolioDetailNotFound(t *testing.T) {
	w := newTestEnv(t).do(http.MethodGet, "/portfolio/i-404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "This project does not exist.")
}

func TestPortfolioDetailNotModified(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/portfolio/i-1", "", "If-None-Match", `W/"portfolio-dark-i-1"`)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, env.themer.gotURL)
}

func TestModeQuerySetsCookie(t *testing.T) {
	w := newTestEnv(t).do(http.MethodGet, "/about?mode=light", "")
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "theme", cookies[0].Name)
	assert.Equal(t, "light", cookies[0].Value)
	assert.Contains(t, w.Body.String(), "--theme-bg: #ffffff;")
	assert.Contains(t, w.Body.String(), `href="?mode=dark"`)
}

func TestUnknownPage(t *testing.T) {
	w := newTestEnv(t).do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "This page does not exist.")
}

func TestRelated(t *testing.T) {
	items := []portfolio.Item{
		{ID: "1", Type: "Web"}, {ID: "2", Type: "Web"}, {ID: "3", Type: "Web"},
		{ID: "4", Type: "Web"}, {ID: "5", Type: "Web"},
	}
	got := related(items, items[0])
	require.Len(t, got, relatedCount)
	assert.Equal(t, "2", got[0].ID)
	assert.Nil(t, related(items, portfolio.Item{ID: "x"}))
}

func TestErrorPagesAreNotCached(t *testing.T) {
	env := newTestEnv(t)
	env.data.err = "coda list rows: HTTP 503"

	for _, path := range []string{"/portfolio", "/portfolio/i-1"} {
		w := env.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadGateway, w.Code, path)
		assert.Empty(t, w.Header().Get("ETag"), path)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"), path)
	}

	env.data.err = ""
	missing := env.do(http.MethodGet, "/portfolio/i-404", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Empty(t, missing.Header().Get("ETag"))
	assert.Equal(t, "no-store", missing.Header().Get("Cache-Control"))

	// Once the upstream is back the page is served fresh and carries a validator.
	w := env.do(http.MethodGet, "/portfolio", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `W/"portfolio-dark-"`, w.Header().Get("ETag"))
	assert.Equal(t, "public, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
}
