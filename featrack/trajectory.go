package featrack

// MaxTrajectoryPoints caps a trajectory's position history; appending the
// 51st point evicts the oldest.
const MaxTrajectoryPoints = 50

// TrackPoint is a single timestamped position in a trajectory's history.
type TrackPoint struct {
	X         float64
	Y         float64
	Timestamp float64
}

// Trajectory is a stable identity linking blob positions across frames.
// Trajectories are only ever marked inactive, never mutated back to a fresh
// state; whether an inactive trajectory is eventually purged is governed by
// Params.InactiveTTL.
type Trajectory struct {
	// ID is a monotonically increasing identifier, never reused
	ID int64
	// Points is the bounded position history, oldest first
	Points []TrackPoint
	// Active reports whether the trajectory was matched on the most recent
	// update
	Active bool
	// Color is a fixed palette entry chosen as ID mod 10 at spawn time
	Color string

	// Consecutive updates without a match, drives TTL eviction
	noMatchFrames int
}

func newTrajectory(id int64, p TrackPoint) *Trajectory {
	return &Trajectory{
		ID:     id,
		Points: append(make([]TrackPoint, 0, 8), p),
		Active: true,
		Color:  trajectoryPalette[id%int64(len(trajectoryPalette))],
	}
}

// LastPoint returns the most recent history entry. Trajectories always hold
// at least one point.
func (t *Trajectory) LastPoint() TrackPoint {
	return t.Points[len(t.Points)-1]
}

func (t *Trajectory) appendPoint(p TrackPoint) {
	t.Points = append(t.Points, p)
	if len(t.Points) > MaxTrajectoryPoints {
		t.Points = t.Points[1:]
	}
}
