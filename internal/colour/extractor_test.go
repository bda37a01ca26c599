package colour

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"reflect"
	"testing"
)

// blockImage fills the left `split` columns with a and the rest with b.
func blockImage(w, h, split int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < split {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		alg     Algorithm
		wantErr bool
	}{
		{AlgorithmProminent, false},
		{AlgorithmKMeans, false},
		{"", false},
		{"mediancut", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			ex, err := NewExtractor(tt.alg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExtractor(%q) error = %v, wantErr %v", tt.alg, err, tt.wantErr)
			}
			if !tt.wantErr && ex == nil {
				t.Fatal("expected extractor")
			}
		})
	}
}

func TestKMeansExtractorFewColours(t *testing.T) {
	img := blockImage(40, 40, 30, red, blue)

	palette, err := NewKMeansExtractor().Extract(img, 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 2 {
		t.Fatalf("expected 2 colours, got %d", palette.Len())
	}
	if palette.Colors[0] != (RGB{R: 255}) {
		t.Errorf("heaviest colour = %+v, want red", palette.Colors[0])
	}
	if palette.Weights[0] <= palette.Weights[1] {
		t.Errorf("weights not descending: %v", palette.Weights)
	}
}

func TestKMeansExtractorClusters(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			// Two noisy clusters around red and blue.
			n := uint8((x*y)%8 + 1)
			if x < 48 {
				img.Set(x, y, color.RGBA{R: 240 + n, G: n, B: n, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: n, G: n, B: 240 + n, A: 255})
			}
		}
	}

	palette, err := NewKMeansExtractor().Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 2 {
		t.Fatalf("expected 2 colours, got %d", palette.Len())
	}
	top := palette.Colors[0]
	if top.R < 200 || top.B > 40 {
		t.Errorf("heaviest cluster = %+v, want reddish", top)
	}
}

func TestKMeansExtractorRejectsBadCount(t *testing.T) {
	img := blockImage(4, 4, 2, red, blue)
	ex := NewKMeansExtractor()

	if _, err := ex.Extract(img, 0); err == nil {
		t.Error("expected error for count 0")
	}
	if _, err := ex.Extract(img, 257); err == nil {
		t.Error("expected error for count 257")
	}
	if _, err := ex.Extract(nil, 5); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestProminentExtractorDominant(t *testing.T) {
	img := blockImage(60, 60, 45, red, blue)

	palette, err := NewProminentExtractor().Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	dominant, ok := palette.Dominant()
	if !ok {
		t.Fatal("expected a dominant colour")
	}
	if dominant.R < 200 || dominant.B > 60 {
		t.Errorf("dominant = %+v, want reddish", dominant)
	}
}

func TestSampleImage(t *testing.T) {
	img := blockImage(20, 20, 15, red, blue)

	sample, err := SampleImage(NewKMeansExtractor(), img, 0)
	if err != nil {
		t.Fatalf("SampleImage() error = %v", err)
	}
	if sample.Dominant != (RGB{R: 255}) {
		t.Errorf("Dominant = %+v, want red", sample.Dominant)
	}
	if len(sample.Palette) != 2 {
		t.Errorf("Palette = %v, want 2 colours", sample.Palette)
	}
}

func TestSampleImageErrors(t *testing.T) {
	if _, err := SampleImage(NewKMeansExtractor(), nil, 5); err == nil {
		t.Error("expected error for nil image")
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := SampleImage(NewKMeansExtractor(), empty, 5); err == nil {
		t.Error("expected error for empty image")
	}

	_, err := SampleImage(emptyExtractor{}, blockImage(2, 2, 1, red, blue), 5)
	if !errors.Is(err, ErrNoColours) {
		t.Errorf("expected ErrNoColours, got %v", err)
	}
}

type emptyExtractor struct{}

func (emptyExtractor) Extract(image.Image, int) (*Palette, error) {
	return NewPalette(nil), nil
}

func TestKMeansExtractorIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	img := image.NewRGBA(image.Rect(0, 0, 80, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			img.Set(x, y, color.RGBA{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256)), A: 255})
		}
	}

	first, err := NewKMeansExtractor().Extract(img, DefaultSampleSize)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := NewKMeansExtractor().Extract(img, DefaultSampleSize)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d: palette = %v, want %v", i, got, first)
		}
	}
}

func TestSeedForDependsOnPixels(t *testing.T) {
	a := []RGB{{R: 1}, {G: 2}}
	b := []RGB{{G: 2}, {R: 1}}
	if seedFor(a) != seedFor(a) {
		t.Error("seedFor() is not stable")
	}
	if seedFor(a) == seedFor(b) {
		t.Error("seedFor() ignores pixel order")
	}
}
