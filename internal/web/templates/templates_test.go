package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/studio/internal/portfolio"
	"github.com/jmylchreest/studio/internal/theme"
)

func TestLayoutBindsTheme(t *testing.T) {
	var b strings.Builder
	page := Page{Title: "About", Path: "/about", Theme: theme.Fallback(theme.ModeLight)}
	require.NoError(t, Layout(page, About()).Render(context.Background(), &b))

	html := b.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `data-theme="light"`)
	assert.Contains(t, html, "<title>About | Studio</title>")
	assert.Contains(t, html, ":root {\n  --theme-bg: #ffffff;")
	assert.Contains(t, html, `<a href="/about" aria-current="page">About</a>`)
	assert.Contains(t, html, `href="?mode=dark"`)
}

func TestDetailEscapesContent(t *testing.T) {
	item := portfolio.Item{
		ID:            "a b",
		Title:         `<script>alert("x")</script>`,
		Type:          "Web",
		DescriptionPT: "linha um\n\nlinha dois",
		ModelURL:      "https://cdn.example.com/m.glb?a=1&b=2",
	}

	var b strings.Builder
	require.NoError(t, PortfolioDetail(DetailData{Item: item}).Render(context.Background(), &b))
	html := b.String()

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `<div class="description" lang="pt"><p>linha um</p><p>linha dois</p></div>`)
	assert.Contains(t, html, `src="https://cdn.example.com/m.glb?a=1&amp;b=2"`)
	assert.NotContains(t, html, `lang="en"`)
}

func TestGridLinksEscapeIDs(t *testing.T) {
	var b strings.Builder
	list := PortfolioList(ListData{Items: []portfolio.Item{{ID: "a b", Title: "T"}}})
	require.NoError(t, list.Render(context.Background(), &b))
	assert.Contains(t, b.String(), `href="/portfolio/a%20b"`)
}

func TestPortfolioListStates(t *testing.T) {
	var b strings.Builder
	require.NoError(t, PortfolioList(ListData{}).Render(context.Background(), &b))
	assert.Contains(t, b.String(), "No projects yet.")

	b.Reset()
	require.NoError(t, PortfolioList(ListData{Error: "boom"}).Render(context.Background(), &b))
	assert.Contains(t, b.String(), `<p class="error" role="alert">boom</p>`)
}

func TestBriefingWithoutURL(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Briefing("").Render(context.Background(), &b))
	assert.NotContains(t, b.String(), "<iframe")
}

func TestUpstreamURLsAreSanitised(t *testing.T) {
	item := portfolio.Item{
		ID:       "x",
		Title:    "T",
		VideoURL: "javascript:alert(1)",
		ModelURL: "javascript:alert(2)",
	}

	var b strings.Builder
	require.NoError(t, PortfolioDetail(DetailData{Item: item}).Render(context.Background(), &b))
	html := b.String()

	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "about:invalid#TemplFailedSanitizationURL")
}

func TestByline(t *testing.T) {
	assert.Equal(t, "Acme · Branding", byline("Acme", "Branding"))
	assert.Equal(t, "Acme", byline("Acme", ""))
	assert.Equal(t, "", byline("", ""))
}
