package colour

import (
	"fmt"
	"strings"
)

// 24-bit ANSI escape sequences.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	defaultWidth = 8
)

// Swatch returns a solid block of width cells in colour c.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return bgEscape(c) + strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText centres text on a block of colour c, in black or white,
// whichever contrasts more.
func SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := White
	if ContrastRatio(Luminance(c), Luminance(Black)) > ContrastRatio(Luminance(c), Luminance(White)) {
		fg = Black
	}

	switch {
	case len(text) > width:
		text = text[:width]
	case len(text) < width:
		pad := (width - len(text)) / 2
		text = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}
	return bgEscape(c) + fgEscape(fg) + text + ansiReset
}

// SwatchLine formats "<swatch>  label  #rrggbb".
func SwatchLine(c RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-20s %s", Swatch(c, width), label, c.Hex())
}

func bgEscape(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%dm", ansiBgPrefix, c.R, c.G, c.B)
}

func fgEscape(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%dm", ansiFgPrefix, c.R, c.G, c.B)
}
