// Package theme derives a page colour theme from a portfolio thumbnail.
package theme

import (
	"fmt"
	"net/http"
	"strings"
)

// Mode is the light/dark presentation preference.
type Mode string

const (
	// ModeDark selects a near-black base.
	ModeDark Mode = "dark"
	// ModeLight selects a near-white base.
	ModeLight Mode = "light"
)

// ParseMode converts "dark"/"light" (any case) to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDark:
		return ModeDark, true
	case ModeLight:
		return ModeLight, true
	}
	return "", false
}

// ModeCookie is the cookie the mode toggle writes.
const ModeCookie = "theme"

// ModeFromRequest resolves the active mode: ?mode= query, then the theme cookie,
// then the Sec-CH-Prefers-Color-Scheme client hint, then fallback.
func ModeFromRequest(r *http.Request, fallback Mode) Mode {
	if m, ok := ParseMode(r.URL.Query().Get("mode")); ok {
		return m
	}
	if c, err := r.Cookie(ModeCookie); err == nil {
		if m, ok := ParseMode(c.Value); ok {
			return m
		}
	}
	if m, ok := ParseMode(strings.Trim(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), `"`)); ok {
		return m
	}
	return fallback
}

// Source records how a Theme was produced.
type Source string

const (
	SourceComputed Source = "computed"
	SourceFallback Source = "fallback"
)

// Palette is the background/text/accent triple a Theme is built around.
type Palette struct {
	Dominant  string `json:"dominant"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Theme holds the eight theme variables bound by the page layout.
type Theme struct {
	Mode            Mode   `json:"mode"`
	Source          Source `json:"source"`
	Background      string `json:"background"`
	BackgroundAlpha string `json:"backgroundAlpha"`
	Text            string `json:"text"`
	TextAlpha       string `json:"textAlpha"`
	Accent          string `json:"accent"`
	AccentHover     string `json:"accentHover"`
	AccentAlpha     string `json:"accentAlpha"`
	Muted           string `json:"muted"`
}

// Palette returns the background/text/accent triple.
func (t Theme) Palette() Palette {
	return Palette{Dominant: t.Background, Secondary: t.Text, Accent: t.Accent}
}

// Variable is a named CSS custom property.
type Variable struct {
	Name  string
	Value string
}

// Variables lists the theme as CSS custom properties in a fixed order.
func (t Theme) Variables() []Variable {
	return []Variable{
		{"--theme-bg", t.Background},
		{"--theme-bg-alpha", t.BackgroundAlpha},
		{"--theme-text", t.Text},
		{"--theme-text-alpha", t.TextAlpha},
		{"--theme-accent", t.Accent},
		{"--theme-accent-hover", t.AccentHover},
		{"--theme-accent-alpha", t.AccentAlpha},
		{"--theme-muted", t.Muted},
	}
}

// CSS renders the variables as a declaration block for selector.
func (t Theme) CSS(selector string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", selector)
	for _, v := range t.Variables() {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// Fallback returns the fixed palette for mode. The hover, alpha and muted values
// are literals, not derived from the accent/text.
func Fallback(mode Mode) Theme {
	if mode == ModeLight {
		return Theme{
			Mode:            ModeLight,
			Source:          SourceFallback,
			Background:      "#ffffff",
			BackgroundAlpha: "rgba(255, 255, 255, 0.97)",
			Text:            "#000000",
			TextAlpha:       "rgba(0, 0, 0, 0.85)",
			Accent:          "#0070f3",
			AccentHover:     "#0051b3",
			AccentAlpha:     "rgba(0, 112, 243, 0.15)",
			Muted:           "#4d4d4d",
		}
	}
	return Theme{
		Mode:            ModeDark,
		Source:          SourceFallback,
		Background:      "#121212",
		BackgroundAlpha: "rgba(18, 18, 18, 0.97)",
		Text:            "#ffffff",
		TextAlpha:       "rgba(255, 255, 255, 0.85)",
		Accent:          "#52ddeb",
		AccentHover:     "#7ae5f0",
		AccentAlpha:     "rgba(82, 221, 235, 0.15)",
		Muted:           "#b3b3b3",
	}
}
