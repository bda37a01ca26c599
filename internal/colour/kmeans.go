package colour

import (
	"fmt"
	"hash/fnv"
	"image"
	"math"
	"math/rand/v2"
)

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
	}
}

// Extract extracts colours from an image using k-means clustering.
// Returns colours ordered by their relative weights (cluster sizes).
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("color count too large: %d (maximum: 256)", count)
	}

	pixels := e.samplePixels(img)
	if len(pixels) == 0 {
		return nil, ErrNoColours
	}

	// Few distinct colours: weigh them by frequency and skip clustering.
	unique := make([]RGB, 0)
	freq := make(map[RGB]int)
	for _, p := range pixels {
		if freq[p] == 0 {
			unique = append(unique, p)
		}
		freq[p]++
	}
	if count >= len(unique) {
		weights := make([]float64, len(unique))
		for i, c := range unique {
			weights[i] = float64(freq[c]) / float64(len(pixels))
		}
		return NewPaletteWithWeights(unique, weights), nil
	}

	centroids, weights := e.kmeans(pixels, count)

	colors := make([]RGB, len(centroids))
	for i, c := range centroids {
		colors[i] = RGB{
			R: clampChannel(math.Round(c.R)),
			G: clampChannel(math.Round(c.G)),
			B: clampChannel(math.Round(c.B)),
		}
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels grid-samples large images down to roughly maxSamples pixels.
func (e *KMeansExtractor) samplePixels(img image.Image) []RGB {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	step := 1
	if totalPixels > e.maxSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(e.maxSamples))), 1)
	}

	pixels := make([]RGB, 0, min(totalPixels, e.maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, ToRGB(img.At(x, y)))
			if len(pixels) >= e.maxSamples {
				return pixels
			}
		}
	}
	return pixels
}

// seedFor hashes the sampled pixels so the same image always clusters the
// same way.
func seedFor(pixels []RGB) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, len(pixels)*3)
	for _, p := range pixels {
		buf = append(buf, p.R, p.G, p.B)
	}
	h.Write(buf)
	return h.Sum64()
}

// clustering holds the state of one k-means run.
type clustering struct {
	points    []point3D
	centroids []point3D
	members   []int
	rng       *rand.Rand
}

// kmeans clusters pixels into k groups and returns the centroids with their
// share of the pixels.
func (e *KMeansExtractor) kmeans(pixels []RGB, k int) ([]point3D, []float64) {
	c := &clustering{
		points:  make([]point3D, len(pixels)),
		members: make([]int, len(pixels)),
		rng:     rand.New(rand.NewPCG(seedFor(pixels), uint64(k))),
	}
	for i, rgb := range pixels {
		c.points[i] = point3D{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
	}
	c.seed(k)

	for iter := 0; iter < e.maxIterations; iter++ {
		moved := c.assign()
		// Fewer than 1% of points changed cluster.
		if iter > 0 && float64(moved)/float64(len(c.points)) < 0.01 {
			break
		}
		if c.update()/float64(k) < e.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, m := range c.members {
		weights[m]++
	}
	for i := range weights {
		weights[i] /= float64(len(c.members))
	}
	return c.centroids, weights
}

// seed picks k initial centroids with k-means++: each next centroid is drawn
// with probability proportional to its squared distance from the chosen ones.
func (c *clustering) seed(k int) {
	c.centroids = make([]point3D, 0, k)
	if len(c.points) == 0 || k == 0 {
		return
	}
	c.centroids = append(c.centroids, c.points[c.rng.IntN(len(c.points))])

	nearest := make([]float64, len(c.points))
	for i := range nearest {
		nearest[i] = math.MaxFloat64
	}

	for len(c.centroids) < k {
		last := c.centroids[len(c.centroids)-1]
		total := 0.0
		for i, p := range c.points {
			if d := p.distance(last); d*d < nearest[i] {
				nearest[i] = d * d
			}
			total += nearest[i]
		}

		if total == 0 {
			c.centroids = append(c.centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := c.rng.Float64() * total
		chosen := len(c.points) - 1
		for i, d := range nearest {
			target -= d
			if target <= 0 {
				chosen = i
				break
			}
		}
		c.centroids = append(c.centroids, c.points[chosen])
	}
}

// assign moves every point to its nearest centroid and returns how many moved.
func (c *clustering) assign() int {
	moved := 0
	for i, p := range c.points {
		if n := nearestCentroid(p, c.centroids); c.members[i] != n {
			c.members[i] = n
			moved++
		}
	}
	return moved
}

// update recomputes centroids as member means and returns the total movement.
// An empty cluster takes over the point farthest from its own centroid.
func (c *clustering) update() float64 {
	k := len(c.centroids)
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, p := range c.points {
		m := c.members[i]
		sums[m].R += p.R
		sums[m].G += p.G
		sums[m].B += p.B
		counts[m]++
	}

	movement := 0.0
	for i := range k {
		var next point3D
		if n := float64(counts[i]); n > 0 {
			next = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		} else {
			next = c.farthestPoint()
		}
		movement += c.centroids[i].distance(next)
		c.centroids[i] = next
	}
	return movement
}

func (c *clustering) farthestPoint() point3D {
	best, far := 0, -1.0
	for i, p := range c.points {
		if d := p.distance(c.centroids[c.members[i]]); d > far {
			best, far = i, d
		}
	}
	return c.points[best]
}

func nearestCentroid(p point3D, centroids []point3D) int {
	nearest, best := 0, math.MaxFloat64
	for i, centroid := range centroids {
		if d := p.distance(centroid); d < best {
			nearest, best = i, d
		}
	}
	return nearest
}
