// Package templates renders the site's HTML pages. The *_templ.go files are
// generated from the .templ sources by `templ generate`.
package templates

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/jmylchreest/studio/internal/theme"
)

func pageTitle(title string) string {
	if title == "" {
		return SiteName
	}
	return title + " | " + SiteName
}

// themeStyle binds the theme variables to :root. The values are formatted
// colours, never user input.
func themeStyle(t theme.Theme) templ.Component {
	return templ.Raw("<style>" + t.CSS(":root") + "</style>")
}

func isCurrent(link navLink, path string) bool {
	return string(link.href) == path
}

func modeURL(current theme.Mode) templ.SafeURL {
	if current == theme.ModeLight {
		return templ.SafeURL("?mode=" + string(theme.ModeDark))
	}
	return templ.SafeURL("?mode=" + string(theme.ModeLight))
}

func modeLabel(current theme.Mode) string {
	if current == theme.ModeLight {
		return "Dark mode"
	}
	return "Light mode"
}

func itemURL(id string) templ.SafeURL {
	return templ.SafeURL("/portfolio/" + url.PathEscape(id))
}

func typeURL(t string) templ.SafeURL {
	if t == "" {
		return "/portfolio"
	}
	return templ.SafeURL("/portfolio?type=" + url.QueryEscape(t))
}

// mediaSrc sanitises an upstream URL for use in a src attribute.
func mediaSrc(u string) string {
	return string(templ.URL(u))
}

func paragraphs(text string) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if para = strings.TrimSpace(para); para != "" {
			out = append(out, para)
		}
	}
	return out
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}

// byline joins the non-empty parts with a middle dot.
func byline(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}
