package featrack

import "math"

const (
	// DefaultSearchWindow is the side of the square displacement search window
	DefaultSearchWindow = 15
	// DefaultPatchSize is the side of the square SAD comparison patch
	DefaultPatchSize = 7
	// DefaultMaxSAD is the acceptance threshold: a match with minimum SAD at
	// or above this value rejects the feature
	DefaultMaxSAD = 5000
)

// Matcher finds a feature's displacement between two consecutive grayscale
// frames. Track mutates the feature in place (position, velocity, age) and
// reports whether the match was accepted; a rejected feature is dropped by
// the caller. Implementations must be deterministic.
type Matcher interface {
	Track(ft *FeaturePoint, prev, curr *GrayFrame) bool
}

// SADMatcher is a brute-force patch matcher: for every offset in a WxW window
// centered on the feature's prior position it computes the sum of absolute
// differences between a PxP patch around the old position in the previous
// frame and the patch at the candidate position in the current frame.
// Candidates whose patch would extend outside the frame are rejected. The
// minimum-SAD offset wins; on ties the first one found in raster order wins,
// which keeps results reproducible. Cost is O(P^2 * W^2) per feature, fine at
// the default population cap.
type SADMatcher struct {
	window int
	patch  int
	maxSAD int
}

// NewSADMatcher creates a matcher with the default window (15), patch (7) and
// acceptance threshold (5000).
func NewSADMatcher() *SADMatcher {
	return NewSADMatcherWith(DefaultSearchWindow, DefaultPatchSize, DefaultMaxSAD)
}

// NewSADMatcherWith creates a matcher with explicit parameters. window and
// patch should be odd so the search and the patch center on the feature.
func NewSADMatcherWith(window, patch, maxSAD int) *SADMatcher {
	return &SADMatcher{
		window: window,
		patch:  patch,
		maxSAD: maxSAD,
	}
}

// Track implements Matcher.
func (m *SADMatcher) Track(ft *FeaturePoint, prev, curr *GrayFrame) bool {
	halfWin := m.window / 2
	halfPatch := m.patch / 2

	px := int(math.Round(ft.X))
	py := int(math.Round(ft.Y))

	// The reference patch itself must be inside the previous frame.
	if !patchInside(prev, px, py, halfPatch) {
		return false
	}

	bestSAD := m.maxSAD
	bestDX, bestDY := 0, 0
	found := false
	for dy := -halfWin; dy <= halfWin; dy++ {
		for dx := -halfWin; dx <= halfWin; dx++ {
			cx := px + dx
			cy := py + dy
			if !patchInside(curr, cx, cy, halfPatch) {
				continue
			}
			sad := patchSAD(prev, curr, px, py, cx, cy, halfPatch)
			if sad < bestSAD {
				bestSAD = sad
				bestDX = dx
				bestDY = dy
				found = true
			}
		}
	}
	if !found {
		return false
	}

	ft.VX = float64(bestDX)
	ft.VY = float64(bestDY)
	ft.X = float64(px + bestDX)
	ft.Y = float64(py + bestDY)
	ft.Age++
	return true
}

func patchInside(g *GrayFrame, x, y, half int) bool {
	return x-half >= 0 && y-half >= 0 && x+half < g.Width && y+half < g.Height
}

func patchSAD(prev, curr *GrayFrame, px, py, cx, cy, half int) int {
	sad := 0
	for oy := -half; oy <= half; oy++ {
		prevRow := (py + oy) * prev.Width
		currRow := (cy + oy) * curr.Width
		for ox := -half; ox <= half; ox++ {
			sad += absInt(int(prev.Pix[prevRow+px+ox]) - int(curr.Pix[currRow+cx+ox]))
		}
	}
	return sad
}
