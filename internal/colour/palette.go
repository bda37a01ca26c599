// Package colour provides colour sampling, contrast and mixing primitives used to
// derive page themes from portfolio thumbnails.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	// White is pure white.
	White = RGB{R: 255, G: 255, B: 255}

	// Black is pure black.
	Black = RGB{}
)

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses a "#rrggbb" string. Anything else (missing '#', wrong length,
// non-hex digits) yields black rather than an error.
func ParseHex(hex string) RGB {
	if len(hex) != 7 || hex[0] != '#' {
		return Black
	}
	for i := 1; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Black
		}
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return Black
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// clampChannel bounds v to [0, 255]. Callers round or floor first.
func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

// Palette is an ordered set of colours sampled from an image, heaviest cluster first.
type Palette struct {
	Colors  []RGB
	Weights []float64
}

// NewPalette creates a new Palette with the given colours and equal weights.
func NewPalette(colors []RGB) *Palette {
	weights := make([]float64, len(colors))
	for i := range weights {
		weights[i] = 1.0 / float64(len(colors))
	}
	return &Palette{Colors: colors, Weights: weights}
}

// NewPaletteWithWeights creates a Palette and orders it by descending weight.
// The sort is stable so equal weights keep their input order.
func NewPaletteWithWeights(colors []RGB, weights []float64) *Palette {
	type entry struct {
		c RGB
		w float64
	}
	entries := make([]entry, len(colors))
	for i, c := range colors {
		var w float64
		if i < len(weights) {
			w = weights[i]
		}
		entries[i] = entry{c: c, w: w}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].w > entries[j].w })

	p := &Palette{
		Colors:  make([]RGB, len(entries)),
		Weights: make([]float64, len(entries)),
	}
	for i, e := range entries {
		p.Colors[i] = e.c
		p.Weights[i] = e.w
	}
	return p
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// Dominant returns the heaviest colour, or false for an empty palette.
func (p *Palette) Dominant() (RGB, bool) {
	if len(p.Colors) == 0 {
		return RGB{}, false
	}
	return p.Colors[0], true
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = ColorJSON{Hex: c.Hex(), RGB: c}
		if i < len(p.Weights) {
			colors[i].Weight = p.Weights[i]
		}
	}
	return json.MarshalIndent(struct {
		Count  int         `json:"count"`
		Colors []ColorJSON `json:"colors"`
	}{Count: len(colors), Colors: colors}, "", "  ")
}
