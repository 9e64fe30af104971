package featrack

// Params is the per-call tuning block for trajectory tracking. MinArea, MaxArea,
// Blur and the Show* toggles are carried for downstream renderers and are not
// enforced by the engine itself.
type Params struct {
	// Detector response threshold (a candidate is accepted above 2x this value)
	Threshold float64
	// Declared blob area bounds, consumed by renderers only
	MinArea float64
	MaxArea float64
	// Persistence is a distance-gate multiplier: a blob may extend a trajectory
	// only within Persistence*50 pixels of its last point. Despite the name it
	// is NOT a grace period - an unmatched trajectory goes inactive the same
	// frame regardless of this value.
	Persistence float64
	// Pre-blur radius, consumed by renderers only
	Blur float64
	// InactiveTTL is the number of consecutive unmatched frames after which an
	// inactive trajectory is purged from the tracker. 0 disables eviction and
	// retains inactive trajectories forever.
	InactiveTTL int
	// Render toggles, consumed by renderers only
	ShowFeatures bool
	ShowBlobs    bool
	ShowTrails   bool
}

// DefaultParams returns the default tuning block.
func DefaultParams() Params {
	return Params{
		Threshold:    30.0,
		MinArea:      100.0,
		MaxArea:      10000.0,
		Persistence:  1.0,
		Blur:         0.0,
		InactiveTTL:  0,
		ShowFeatures: true,
		ShowBlobs:    true,
		ShowTrails:   true,
	}
}

// trajectoryPalette is the fixed 10-entry cyclic palette. A trajectory's color
// is trajectoryPalette[id mod 10] and never changes afterwards.
var trajectoryPalette = [10]string{
	"#e6194b",
	"#3cb44b",
	"#ffe119",
	"#4363d8",
	"#f58231",
	"#911eb4",
	"#46f0f0",
	"#f032e6",
	"#bcf60c",
	"#808000",
}
