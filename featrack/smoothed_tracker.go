package featrack

import (
	"math"
	"sort"

	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

/* Kalman filter props, shared by every smoothed track */
const (
	kalmanControlX = 1.0
	kalmanControlY = 1.0
	kalmanStdDevA  = 2.0
	kalmanStdDevMx = 0.1
	kalmanStdDevMy = 0.1
)

// smoothedTrack pairs a trajectory with its position filter and the predicted
// next position used for gating.
type smoothedTrack struct {
	traj      *Trajectory
	filter    *kalman_filter.Kalman2D
	predicted Point
}

// SmoothedTracker is an alternative Tracker that runs a 2D Kalman filter per
// trajectory: gating is done against the predicted next position rather than
// the last raw point, and assignment is closest-first over all blobs via a
// min-distance heap instead of input order. History points are the filtered
// state, so trails come out smoothed. The greedy order-dependent
// TrajectoryTracker remains the default; use this one when jittery detections
// make raw gating unstable.
type SmoothedTracker struct {
	instance uuid.UUID
	dt       float64
	tracks   map[int64]*smoothedTrack
	nextID   int64
	log      zerolog.Logger
}

// NewSmoothedTracker creates an empty smoothed tracker. dt is the expected
// frame interval in seconds (e.g. 1.0/25.0 for 25 fps input).
func NewSmoothedTracker(dt float64) *SmoothedTracker {
	return &SmoothedTracker{
		instance: uuid.New(),
		dt:       dt,
		tracks:   make(map[int64]*smoothedTrack),
		log:      zerolog.Nop(),
	}
}

// SetLogger attaches a structured logger. The tracker logs at debug level
// only; the default is a no-op logger.
func (t *SmoothedTracker) SetLogger(logger zerolog.Logger) {
	t.log = logger.With().Str("component", "smoothed_tracker").Str("instance", t.instance.String()).Logger()
}

// Update implements Tracker.
func (t *SmoothedTracker) Update(blobs []Point, timestamp float64, params Params) []*Trajectory {
	gate := params.Persistence * PersistenceGateScale

	for _, tr := range t.tracks {
		if !tr.traj.Active {
			continue
		}
		tr.filter.Predict()
		stateX, stateY := tr.filter.GetState()
		tr.predicted = Point{X: stateX, Y: stateY}
	}

	queue := make(assignHeap, 0, len(blobs))
	for _, blob := range blobs {
		minID := int64(-1)
		minDistance := math.MaxFloat64
		for id, tr := range t.tracks {
			if !tr.traj.Active {
				continue
			}
			dist := euclideanDistance(blob, tr.predicted)
			if dist < minDistance {
				minDistance = dist
				minID = id
			}
		}
		queue.Push(&assignCandidate{
			blob:     blob,
			trackID:  minID,
			distance: minDistance,
		})
	}

	matched := make(map[int64]struct{}, len(blobs))
	for queue.Len() > 0 {
		candidate := queue.Pop()
		if _, taken := matched[candidate.trackID]; taken || candidate.trackID < 0 || candidate.distance >= gate {
			t.spawn(candidate.blob, timestamp, matched)
			continue
		}
		tr := t.tracks[candidate.trackID]
		point := TrackPoint{X: candidate.blob.X, Y: candidate.blob.Y, Timestamp: timestamp}
		if err := tr.filter.Update(candidate.blob.X, candidate.blob.Y); err != nil {
			// Keep the raw measurement if the filter cannot absorb it.
			t.log.Debug().Err(err).Int64("id", candidate.trackID).Msg("filter update failed, keeping raw point")
		} else {
			point.X, point.Y = tr.filter.GetState()
		}
		tr.traj.appendPoint(point)
		matched[candidate.trackID] = struct{}{}
	}

	for id, tr := range t.tracks {
		if _, ok := matched[id]; ok {
			tr.traj.Active = true
			tr.traj.noMatchFrames = 0
			continue
		}
		tr.traj.Active = false
		tr.traj.noMatchFrames++
		if params.InactiveTTL > 0 && tr.traj.noMatchFrames > params.InactiveTTL {
			delete(t.tracks, id)
		}
	}

	return t.snapshot()
}

// Reset implements Tracker. Idempotent.
func (t *SmoothedTracker) Reset() {
	t.tracks = make(map[int64]*smoothedTrack)
	t.nextID = 0
}

// Len returns the number of retained trajectories, active and inactive.
func (t *SmoothedTracker) Len() int {
	return len(t.tracks)
}

func (t *SmoothedTracker) spawn(blob Point, timestamp float64, matched map[int64]struct{}) {
	id := t.nextID
	t.nextID++
	filter := kalman_filter.NewKalman2D(
		t.dt, kalmanControlX, kalmanControlY, kalmanStdDevA, kalmanStdDevMx, kalmanStdDevMy,
		kalman_filter.WithState2D(blob.X, blob.Y),
	)
	t.tracks[id] = &smoothedTrack{
		traj:   newTrajectory(id, TrackPoint{X: blob.X, Y: blob.Y, Timestamp: timestamp}),
		filter: filter,
	}
	matched[id] = struct{}{}
	t.log.Debug().Int64("id", id).Float64("x", blob.X).Float64("y", blob.Y).Msg("trajectory spawned")
}

func (t *SmoothedTracker) snapshot() []*Trajectory {
	out := make([]*Trajectory, 0, len(t.tracks))
	for _, id := range t.sortedIDs() {
		out = append(out, t.tracks[id].traj)
	}
	return out
}

func (t *SmoothedTracker) sortedIDs() []int64 {
	ids := make([]int64, 0, len(t.tracks))
	for id := range t.tracks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
