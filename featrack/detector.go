package featrack

const (
	// DefaultGridStride is the grid sampling step in pixels
	DefaultGridStride = 15
	// DefaultMinSpacing is the minimum Chebyshev distance to any already
	// active feature
	DefaultMinSpacing = 10
	// DefaultMaxFeatures caps the simultaneously active feature population
	DefaultMaxFeatures = 200
)

// FeatureDetector samples a fixed grid over a grayscale frame and scores each
// candidate with the sum of absolute intensity differences against its four
// axis-aligned neighbors - a cheap stand-in for a Harris/Shi-Tomasi corner
// response. Deterministic given identical frame and threshold.
type FeatureDetector struct {
	stride      int
	minSpacing  int
	maxFeatures int
	nextID      int64
}

// NewFeatureDetector creates a detector with the default grid stride (15),
// spacing (10) and population cap (200).
func NewFeatureDetector() *FeatureDetector {
	return NewFeatureDetectorWith(DefaultGridStride, DefaultMinSpacing, DefaultMaxFeatures)
}

// NewFeatureDetectorWith creates a detector with explicit parameters.
func NewFeatureDetectorWith(stride, minSpacing, maxFeatures int) *FeatureDetector {
	return &FeatureDetector{
		stride:      stride,
		minSpacing:  minSpacing,
		maxFeatures: maxFeatures,
	}
}

// Detect scans the grid and appends new feature candidates to features,
// returning the extended slice. A candidate is accepted iff its corner
// response exceeds 2x threshold and it is not within minSpacing (Chebyshev)
// of any already active feature. Scanning stops as soon as the population
// reaches the cap.
func (d *FeatureDetector) Detect(gray *GrayFrame, threshold float64, features []*FeaturePoint) []*FeaturePoint {
	accept := 2.0 * threshold
	for y := d.stride; y < gray.Height-1; y += d.stride {
		for x := d.stride; x < gray.Width-1; x += d.stride {
			if len(features) >= d.maxFeatures {
				return features
			}
			if d.tooClose(float64(x), float64(y), features) {
				continue
			}
			score := cornerScore(gray, x, y)
			if score > accept {
				features = append(features, &FeaturePoint{
					ID:    d.nextID,
					X:     float64(x),
					Y:     float64(y),
					Score: score,
				})
				d.nextID++
			}
		}
	}
	return features
}

// Reset returns the detector to its construction-time state. Idempotent.
func (d *FeatureDetector) Reset() {
	d.nextID = 0
}

func (d *FeatureDetector) tooClose(x, y float64, features []*FeaturePoint) bool {
	spacing := float64(d.minSpacing)
	for _, ft := range features {
		if chebyshevDistance(Point{X: x, Y: y}, ft.Position()) < spacing {
			return true
		}
	}
	return false
}

// cornerScore is the sum of absolute differences between the pixel and its
// four axis-aligned neighbors. Caller guarantees 1 <= x < W-1, 1 <= y < H-1.
func cornerScore(gray *GrayFrame, x, y int) float64 {
	center := int(gray.At(x, y))
	score := absInt(center-int(gray.At(x-1, y))) +
		absInt(center-int(gray.At(x+1, y))) +
		absInt(center-int(gray.At(x, y-1))) +
		absInt(center-int(gray.At(x, y+1)))
	return float64(score)
}
