package theme

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/studio/internal/colour"
	"github.com/jmylchreest/studio/internal/image"
)

const (
	darkBackgroundWeight  = 0.85
	lightBackgroundWeight = 0.15

	darkTextContrast   = 7.0
	lightTextContrast  = 5.0
	accentContrast     = 4.5
	darkAccentLift     = 0.8
	lightAccentShade   = 0.2
	brighten           = 1.3
	darken             = 0.7
	backgroundAlpha    = 0.97
	textAlpha          = 0.85
	accentOverlayAlpha = 0.15
)

// Composer turns a thumbnail into a Theme.
type Composer struct {
	loader    image.Loader
	extractor colour.Extractor
	logger    hclog.Logger
}

// NewComposer creates a Composer. A nil logger discards output.
func NewComposer(loader image.Loader, extractor colour.Extractor, logger hclog.Logger) *Composer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Composer{loader: loader, extractor: extractor, logger: logger}
}

// Compose loads imageURL and derives a theme for mode. Any failure (empty URL,
// forbidden host, fetch or decode error, empty palette, cancelled context) yields
// Fallback(mode). Results are never cached.
func (c *Composer) Compose(ctx context.Context, imageURL string, mode Mode) Theme {
	if mode != ModeLight {
		mode = ModeDark
	}
	if imageURL == "" {
		return Fallback(mode)
	}

	img, err := c.loader.Load(ctx, imageURL)
	if err != nil {
		c.logger.Debug("using fallback theme", "cause", "load", "url", imageURL, "error", err)
		return Fallback(mode)
	}

	sample, err := colour.SampleImage(c.extractor, img, colour.DefaultSampleSize)
	if err != nil {
		c.logger.Debug("using fallback theme", "cause", "sample", "url", imageURL, "error", err)
		return Fallback(mode)
	}

	accentSeed, ok := colour.MostVibrant(sample.Palette)
	if !ok {
		c.logger.Debug("using fallback theme", "cause", "select", "url", imageURL)
		return Fallback(mode)
	}

	// The request may have gone away while the image was loading.
	if err := ctx.Err(); err != nil {
		c.logger.Debug("using fallback theme", "cause", "cancelled", "url", imageURL)
		return Fallback(mode)
	}

	t := Derive(sample.Dominant, accentSeed, mode)
	c.logger.Trace("composed theme", "url", imageURL, "mode", mode, "background", t.Background, "accent", t.Accent)
	return t
}

// Derive builds a theme from a dominant colour and an accent seed.
func Derive(dominant, accentSeed colour.RGB, mode Mode) Theme {
	dark := mode != ModeLight

	baseBackground, baseText := colour.White.Hex(), colour.Black.Hex()
	weight, textContrast := lightBackgroundWeight, lightTextContrast
	if dark {
		baseBackground, baseText = baseText, baseBackground
		weight, textContrast = darkBackgroundWeight, darkTextContrast
	}

	background := colour.Mix(dominant.Hex(), baseBackground, weight)
	text := colour.EnsureMinimumContrast(background, baseText, textContrast)

	var accentBase, accentHover, muted string
	if dark {
		accentBase = colour.Mix(accentSeed.Hex(), colour.White.Hex(), darkAccentLift)
	} else {
		accentBase = colour.Mix(accentSeed.Hex(), colour.Black.Hex(), lightAccentShade)
	}
	accent := colour.EnsureMinimumContrast(background, accentBase, accentContrast)

	if dark {
		accentHover = colour.ScaleBrightness(accent, brighten)
		muted = colour.ScaleBrightness(text, darken)
	} else {
		accentHover = colour.ScaleBrightness(accent, darken)
		muted = colour.ScaleBrightness(text, brighten)
	}

	m := ModeLight
	if dark {
		m = ModeDark
	}

	return Theme{
		Mode:            m,
		Source:          SourceComputed,
		Background:      background,
		BackgroundAlpha: colour.WithAlpha(background, backgroundAlpha).String(),
		Text:            text,
		TextAlpha:       colour.WithAlpha(text, textAlpha).String(),
		Accent:          accent,
		AccentHover:     accentHover,
		AccentAlpha:     colour.WithAlpha(accent, accentOverlayAlpha).String(),
		Muted:           muted,
	}
}
