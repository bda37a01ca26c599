package colour

import (
	"fmt"
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	rf := gammaCorrect(float64(c.R) / 255.0)
	rg := gammaCorrect(float64(c.G) / 255.0)
	rb := gammaCorrect(float64(c.B) / 255.0)

	return 0.2126*rf + 0.7152*rg + 0.0722*rb
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two relative luminances.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(l1, l2 float64) float64 {
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Contrast is ContrastRatio over two hex colours.
func Contrast(a, b string) float64 {
	return ContrastRatio(Luminance(ParseHex(a)), Luminance(ParseHex(b)))
}

// EnsureMinimumContrast returns foreground unchanged when it already reaches minRatio
// against background. Otherwise it is pushed to white when it is lighter than the
// background and to black when it is not.
func EnsureMinimumContrast(background, foreground string, minRatio float64) string {
	bgLum := Luminance(ParseHex(background))
	fgLum := Luminance(ParseHex(foreground))

	if ContrastRatio(bgLum, fgLum) >= minRatio {
		return foreground
	}
	if fgLum > bgLum {
		return White.Hex()
	}
	return Black.Hex()
}

// Mix blends a and b per channel as round(weight*a + (1-weight)*b).
func Mix(a, b string, weight float64) string {
	ca, cb := ParseHex(a), ParseHex(b)
	mix := func(x, y uint8) uint8 {
		return clampChannel(math.Round(weight*float64(x) + (1-weight)*float64(y)))
	}
	return RGB{
		R: mix(ca.R, cb.R),
		G: mix(ca.G, cb.G),
		B: mix(ca.B, cb.B),
	}.Hex()
}

// ScaleBrightness multiplies every channel by factor and floors the result.
// factor > 1 brightens, factor < 1 darkens.
func ScaleBrightness(c string, factor float64) string {
	rgb := ParseHex(c)
	scale := func(v uint8) uint8 {
		return clampChannel(math.Floor(float64(v) * factor))
	}
	return RGB{R: scale(rgb.R), G: scale(rgb.G), B: scale(rgb.B)}.Hex()
}

// AlphaColor is an RGB colour with an opacity, used for translucent overlays.
type AlphaColor struct {
	RGB
	Alpha float64
}

// WithAlpha attaches alpha to c. Alpha is not validated.
func WithAlpha(c string, alpha float64) AlphaColor {
	return AlphaColor{RGB: ParseHex(c), Alpha: alpha}
}

// String renders the colour as "rgba(r, g, b, a)".
func (a AlphaColor) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", a.R, a.G, a.B, a.Alpha)
}

// Vibrancy scores a colour as saturation times brightness, where saturation is the
// channel spread and brightness is the channel mean.
func Vibrancy(c RGB) float64 {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	saturation := float64(hi) - float64(lo)
	brightness := (float64(c.R) + float64(c.G) + float64(c.B)) / 3
	return saturation * brightness
}

// MostVibrant picks the palette entry with the highest Vibrancy. The first colour
// wins ties. A single-entry palette is returned as is.
func MostVibrant(palette []RGB) (RGB, bool) {
	switch len(palette) {
	case 0:
		return RGB{}, false
	case 1:
		return palette[0], true
	}

	best := palette[0]
	bestScore := Vibrancy(best)
	for _, c := range palette[1:] {
		if score := Vibrancy(c); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, true
}
