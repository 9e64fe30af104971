package featrack

// FeaturePoint is a grid-sampled corner-like point tracked frame to frame.
// Created by the detector with zero velocity and age 0, mutated in place by
// the matcher on every successful match, and dropped (not carried forward)
// when a match is rejected.
type FeaturePoint struct {
	// ID is a monotonically increasing identifier, never reused
	ID int64
	// Current pixel position
	X float64
	Y float64
	// Last-frame displacement
	VX float64
	VY float64
	// Detector response at creation time
	Score float64
	// Number of frames the feature has been successfully tracked
	Age int
}

// Position returns the feature's current pixel position.
func (f *FeaturePoint) Position() Point {
	return Point{X: f.X, Y: f.Y}
}

// Velocity returns the feature's last-frame displacement.
func (f *FeaturePoint) Velocity() Point {
	return Point{X: f.VX, Y: f.VY}
}

// Speed returns the L1 speed |vx| + |vy|.
func (f *FeaturePoint) Speed() float64 {
	vx := f.VX
	if vx < 0 {
		vx = -vx
	}
	vy := f.VY
	if vy < 0 {
		vy = -vy
	}
	return vx + vy
}
