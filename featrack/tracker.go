package featrack

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PersistenceGateScale converts the Persistence parameter into a pixel
// distance gate: a blob may extend a trajectory only when it lies within
// Persistence*PersistenceGateScale pixels of the trajectory's last point.
const PersistenceGateScale = 50.0

// Tracker assigns stable identities to per-frame blob positions. Update
// returns the full current trajectory set, active and inactive, ordered by
// id. Implementations own all trajectory state; Reset restores the
// construction-time empty state and must not race Update.
type Tracker interface {
	Update(blobs []Point, timestamp float64, params Params) []*Trajectory
	Reset()
}

// TrajectoryTracker is the default greedy nearest-neighbor tracker. For each
// incoming blob, in input order, it claims the nearest still-unclaimed active
// trajectory within the persistence gate; once claimed a trajectory is
// unavailable to later blobs even if they would be closer, so assignment is
// order-dependent by design (no global optimal assignment). A blob with no
// eligible trajectory spawns a new one. Any trajectory unmatched this frame
// goes inactive immediately - there is no grace period despite the
// "persistence" name.
type TrajectoryTracker struct {
	instance     uuid.UUID
	trajectories map[int64]*Trajectory
	nextID       int64
	log          zerolog.Logger
}

// NewTrajectoryTracker creates an empty tracker.
func NewTrajectoryTracker() *TrajectoryTracker {
	return &TrajectoryTracker{
		instance:     uuid.New(),
		trajectories: make(map[int64]*Trajectory),
		log:          zerolog.Nop(),
	}
}

// SetLogger attaches a structured logger. The tracker logs at debug level
// only; the default is a no-op logger.
func (t *TrajectoryTracker) SetLogger(logger zerolog.Logger) {
	t.log = logger.With().Str("component", "trajectory_tracker").Str("instance", t.instance.String()).Logger()
}

// Update implements Tracker.
func (t *TrajectoryTracker) Update(blobs []Point, timestamp float64, params Params) []*Trajectory {
	gate := params.Persistence * PersistenceGateScale
	ids := t.sortedIDs()
	matched := make(map[int64]struct{}, len(blobs))

	for _, blob := range blobs {
		var best *Trajectory
		bestDist := gate
		for _, id := range ids {
			traj := t.trajectories[id]
			if !traj.Active {
				continue
			}
			if _, taken := matched[id]; taken {
				continue
			}
			last := traj.LastPoint()
			dist := euclideanDistance(blob, Point{X: last.X, Y: last.Y})
			if dist < bestDist {
				bestDist = dist
				best = traj
			}
		}
		point := TrackPoint{X: blob.X, Y: blob.Y, Timestamp: timestamp}
		if best != nil {
			best.appendPoint(point)
			matched[best.ID] = struct{}{}
			continue
		}
		spawned := newTrajectory(t.nextID, point)
		t.nextID++
		t.trajectories[spawned.ID] = spawned
		// A trajectory born this frame counts as matched: it is neither
		// deactivated below nor claimable by a later blob in the same frame.
		matched[spawned.ID] = struct{}{}
		t.log.Debug().Int64("id", spawned.ID).Float64("x", blob.X).Float64("y", blob.Y).Msg("trajectory spawned")
	}

	for id, traj := range t.trajectories {
		if _, ok := matched[id]; ok {
			traj.Active = true
			traj.noMatchFrames = 0
			continue
		}
		if traj.Active {
			t.log.Debug().Int64("id", id).Msg("trajectory deactivated")
		}
		traj.Active = false
		traj.noMatchFrames++
		if params.InactiveTTL > 0 && traj.noMatchFrames > params.InactiveTTL {
			delete(t.trajectories, id)
		}
	}

	return t.snapshot()
}

// Reset implements Tracker. Idempotent: clears all trajectories and rewinds
// the id counter.
func (t *TrajectoryTracker) Reset() {
	t.trajectories = make(map[int64]*Trajectory)
	t.nextID = 0
}

// Len returns the number of retained trajectories, active and inactive.
func (t *TrajectoryTracker) Len() int {
	return len(t.trajectories)
}

func (t *TrajectoryTracker) sortedIDs() []int64 {
	ids := make([]int64, 0, len(t.trajectories))
	for id := range t.trajectories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *TrajectoryTracker) snapshot() []*Trajectory {
	out := make([]*Trajectory, 0, len(t.trajectories))
	for _, id := range t.sortedIDs() {
		out = append(out, t.trajectories[id])
	}
	return out
}
