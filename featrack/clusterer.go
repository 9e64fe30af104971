package featrack

import (
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultMinSpeed is the L1 speed gate: features at or below it never
	// form blobs
	DefaultMinSpeed = 0.2
	// DefaultMaxGroupDistance is the maximum Euclidean position distance to
	// the group seed
	DefaultMaxGroupDistance = 60.0
	// DefaultMaxVelocityDelta is the maximum Euclidean velocity distance to
	// the group seed, in pixels per frame
	DefaultMaxVelocityDelta = 2.0
	// DefaultMinGroupSize is the minimum number of grouped features required
	// to emit a blob
	DefaultMinGroupSize = 3
	// DefaultBlobPadding expands the emitted bounding box on all sides
	DefaultBlobPadding = 10.0
)

// RawBlob is one frame's axis-aligned bounding region over a group of
// co-moving features. Ephemeral: recomputed fully every frame, never
// persisted.
type RawBlob struct {
	// Padded bounding box
	X float64
	Y float64
	W float64
	H float64
	// Area of the pre-padding member extents
	Area float64
	// Number of grouped features
	PointCount int
	// Mean member velocity
	MeanVX float64
	MeanVY float64
}

// Center returns the center of the blob's padded bounding box. This is the
// position the trajectory tracker gates against.
func (b RawBlob) Center() Point {
	return Point{X: b.X + b.W/2.0, Y: b.Y + b.H/2.0}
}

// Bounds returns the padded bounding box as a Rectangle.
func (b RawBlob) Bounds() Rectangle {
	return NewRect(b.X, b.Y, b.W, b.H)
}

// Clusterer groups moving features into blob regions. Implementations must be
// deterministic given an identical feature slice.
type Clusterer interface {
	Cluster(features []*FeaturePoint) []RawBlob
}

// SeedClusterer groups features by single-seed greedy scanning, NOT by
// transitive connected components: each unvisited feature in turn seeds a
// group, and every other unvisited feature joins iff it is within the
// position and velocity gates of the seed itself. A feature two hops away
// through an intermediate member is never joined unless it is also in range
// of the seed. This intentional approximation is part of the observable
// contract and must not be "fixed" into full connected-component clustering.
type SeedClusterer struct {
	minSpeed     float64
	maxDistance  float64
	maxVelocity  float64
	minGroupSize int
	padding      float64
}

// NewSeedClusterer creates a clusterer with the default gates.
func NewSeedClusterer() *SeedClusterer {
	return &SeedClusterer{
		minSpeed:     DefaultMinSpeed,
		maxDistance:  DefaultMaxGroupDistance,
		maxVelocity:  DefaultMaxVelocityDelta,
		minGroupSize: DefaultMinGroupSize,
		padding:      DefaultBlobPadding,
	}
}

// NewSeedClustererWith creates a clusterer with explicit gates.
func NewSeedClustererWith(minSpeed, maxDistance, maxVelocity float64, minGroupSize int, padding float64) *SeedClusterer {
	return &SeedClusterer{
		minSpeed:     minSpeed,
		maxDistance:  maxDistance,
		maxVelocity:  maxVelocity,
		minGroupSize: minGroupSize,
		padding:      padding,
	}
}

// Cluster implements Clusterer.
func (c *SeedClusterer) Cluster(features []*FeaturePoint) []RawBlob {
	moving := make([]*FeaturePoint, 0, len(features))
	for _, ft := range features {
		if ft.Speed() > c.minSpeed {
			moving = append(moving, ft)
		}
	}
	if len(moving) < c.minGroupSize {
		return nil
	}

	var blobs []RawBlob
	visited := make([]bool, len(moving))
	for i, seed := range moving {
		if visited[i] {
			continue
		}
		visited[i] = true
		group := []*FeaturePoint{seed}
		for j, other := range moving {
			if visited[j] {
				continue
			}
			if euclideanDistance(other.Position(), seed.Position()) < c.maxDistance &&
				euclideanDistance(other.Velocity(), seed.Velocity()) < c.maxVelocity {
				visited[j] = true
				group = append(group, other)
			}
		}
		if len(group) >= c.minGroupSize {
			blobs = append(blobs, c.emit(group))
		}
	}
	return blobs
}

func (c *SeedClusterer) emit(group []*FeaturePoint) RawBlob {
	minX, minY := group[0].X, group[0].Y
	maxX, maxY := minX, minY
	vxs := make([]float64, len(group))
	vys := make([]float64, len(group))
	for i, ft := range group {
		minX = minFloat64(minX, ft.X)
		minY = minFloat64(minY, ft.Y)
		maxX = maxFloat64(maxX, ft.X)
		maxY = maxFloat64(maxY, ft.Y)
		vxs[i] = ft.VX
		vys[i] = ft.VY
	}
	return RawBlob{
		X:          minX - c.padding,
		Y:          minY - c.padding,
		W:          maxX - minX + 2.0*c.padding,
		H:          maxY - minY + 2.0*c.padding,
		Area:       (maxX - minX) * (maxY - minY),
		PointCount: len(group),
		MeanVX:     stat.Mean(vxs, nil),
		MeanVY:     stat.Mean(vys, nil),
	}
}
