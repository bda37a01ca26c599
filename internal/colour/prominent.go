package colour

import (
	"fmt"
	"image"

	"github.com/EdlinOrg/prominentcolor"
)

// ProminentExtractor delegates quantization to prominentcolor's k-means.
type ProminentExtractor struct {
	arguments int
	resize    uint
}

// NewProminentExtractor returns an extractor that samples the whole image
// (no background cropping) at prominentcolor's default working size.
func NewProminentExtractor() *ProminentExtractor {
	return &ProminentExtractor{
		arguments: prominentcolor.ArgumentNoCropping,
		resize:    uint(prominentcolor.DefaultSize),
	}
}

// Extract runs prominentcolor with count clusters and no background masks.
func (e *ProminentExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", count)
	}

	items, err := prominentcolor.KmeansWithAll(count, img, e.arguments, e.resize, nil)
	if err != nil {
		return nil, fmt.Errorf("prominentcolor: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoColours
	}

	colors := make([]RGB, len(items))
	weights := make([]float64, len(items))
	for i, item := range items {
		colors[i] = RGB{
			R: clampChannel(float64(item.Color.R)),
			G: clampChannel(float64(item.Color.G)),
			B: clampChannel(float64(item.Color.B)),
		}
		weights[i] = float64(item.Cnt)
	}

	return NewPaletteWithWeights(colors, weights), nil
}
