// Package featrack is a sparse feature-tracking engine for video analysis:
// it detects corner-like points on grayscale frames, tracks them with
// patch-based SAD matching, groups co-moving features into blob regions and
// assigns persistent identities to those regions across frames. The engine is
// a call-synchronous, single-consumer pipeline with no internal goroutines;
// decode, rendering and persistence belong to the caller.
package featrack

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultReplenishBelow is the population floor: after tracking, if fewer
// features survive, the detector runs again on the current frame.
const DefaultReplenishBelow = 50

// Result is the per-frame output of Engine.Process, consumed by renderers and
// by the trajectory tracker (via blob centers).
type Result struct {
	Blobs    []RawBlob
	Features []FeaturePoint
}

// Engine owns the per-frame pipeline state: the previous grayscale frame and
// the active feature set. It must be driven by a single logical caller; Reset
// must never run concurrently with Process on the same instance.
type Engine struct {
	instance  uuid.UUID
	width     int
	height    int
	detector  *FeatureDetector
	matcher   Matcher
	clusterer Clusterer
	replenish int
	features  []*FeaturePoint
	prev      *GrayFrame
	frames    int64
	log       zerolog.Logger
}

// NewEngine creates an engine for the given analysis resolution with the
// default detector, matcher and clusterer.
func NewEngine(width, height int) *Engine {
	return NewEngineWithStrategies(width, height, NewFeatureDetector(), NewSADMatcher(), NewSeedClusterer())
}

// NewEngineWithStrategies creates an engine with explicit pipeline stages so
// a spatial-hash or pyramidal implementation can replace the defaults without
// changing the externally observed contract.
func NewEngineWithStrategies(width, height int, detector *FeatureDetector, matcher Matcher, clusterer Clusterer) *Engine {
	return &Engine{
		instance:  uuid.New(),
		width:     width,
		height:    height,
		detector:  detector,
		matcher:   matcher,
		clusterer: clusterer,
		replenish: DefaultReplenishBelow,
		log:       zerolog.Nop(),
	}
}

// SetLogger attaches a structured logger. The engine logs at debug level
// only; the default is a no-op logger.
func (e *Engine) SetLogger(logger zerolog.Logger) {
	e.log = logger.With().Str("component", "engine").Str("instance", e.instance.String()).Logger()
}

// Process runs one pipeline pass over an interleaved RGBA buffer of exactly
// width*height*4 bytes: grayscale projection, displacement tracking of the
// existing features against the previous frame, detector replenishment when
// the population falls below the floor, then blob clustering. All work
// completes synchronously before return. A mis-sized buffer fails fast with
// ErrInvalidFrameSize; an empty result is not an error.
func (e *Engine) Process(pix []uint8, sensitivity float64) (Result, error) {
	gray, err := ToGray(pix, e.width, e.height)
	if err != nil {
		return Result{}, errors.Wrap(err, "process frame")
	}

	tracked, dropped := 0, 0
	if e.prev != nil {
		kept := e.features[:0]
		for _, ft := range e.features {
			if e.matcher.Track(ft, e.prev, gray) {
				kept = append(kept, ft)
				tracked++
			} else {
				dropped++
			}
		}
		e.features = kept
	}

	detected := 0
	if len(e.features) < e.replenish {
		before := len(e.features)
		e.features = e.detector.Detect(gray, sensitivity, e.features)
		detected = len(e.features) - before
	}

	blobs := e.clusterer.Cluster(e.features)
	e.prev = gray
	e.frames++

	e.log.Debug().
		Int64("frame", e.frames).
		Int("tracked", tracked).
		Int("dropped", dropped).
		Int("detected", detected).
		Int("features", len(e.features)).
		Int("blobs", len(blobs)).
		Msg("frame processed")

	out := make([]FeaturePoint, len(e.features))
	for i, ft := range e.features {
		out[i] = *ft
	}
	return Result{Blobs: blobs, Features: out}, nil
}

// Reset returns the engine to its construction-time state: no previous frame,
// no features, detector id counter rewound. Idempotent.
func (e *Engine) Reset() {
	e.prev = nil
	e.features = nil
	e.frames = 0
	e.detector.Reset()
}

// FeatureCount returns the size of the active feature set.
func (e *Engine) FeatureCount() int {
	return len(e.features)
}
