package colour

import (
	"errors"
	"fmt"
	"image"
)

// DefaultSampleSize is the palette size sampled for theming.
const DefaultSampleSize = 5

// ErrNoColours is returned when an extractor finds nothing usable in an image.
var ErrNoColours = errors.New("no colours extracted")

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image, heaviest cluster first.
	// The count parameter specifies the number of colours to extract.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmProminent uses the prominentcolor k-means implementation.
	AlgorithmProminent Algorithm = "prominent"

	// AlgorithmKMeans uses the built-in k-means++ clustering.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmProminent, AlgorithmKMeans}
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmProminent, "":
		return NewProminentExtractor(), nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// Sample is the result of sampling an image: its dominant colour and a palette of
// representative colours.
type Sample struct {
	Dominant RGB
	Palette  []RGB
}

// SampleImage extracts a dominant colour and a palette of up to count colours.
func SampleImage(ex Extractor, img image.Image, count int) (Sample, error) {
	if img == nil {
		return Sample{}, fmt.Errorf("image cannot be nil")
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return Sample{}, fmt.Errorf("image has no pixels")
	}
	if count < 1 {
		count = DefaultSampleSize
	}

	palette, err := ex.Extract(img, count)
	if err != nil {
		return Sample{}, err
	}
	dominant, ok := palette.Dominant()
	if !ok {
		return Sample{}, ErrNoColours
	}

	return Sample{Dominant: dominant, Palette: palette.Colors}, nil
}
