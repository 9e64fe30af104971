package featrack

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 480
	testHeight = 270
)

func TestProcessRejectsInvalidBufferSize(t *testing.T) {
	engine := NewEngine(testWidth, testHeight)

	_, err := engine.Process(make([]uint8, 100), 30.0)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidFrameSize))

	_, err = engine.Process(flatRGBA(testWidth, testHeight-1, 128), 30.0)
	require.True(t, errors.Is(err, ErrInvalidFrameSize))
}

func TestProcessFlatFrames(t *testing.T) {
	engine := NewEngine(testWidth, testHeight)
	frame := flatRGBA(testWidth, testHeight, 128)

	res, err := engine.Process(frame, 30.0)
	require.NoError(t, err)
	require.Empty(t, res.Features)
	require.Empty(t, res.Blobs)

	// Second identical flat frame: still nothing to track or detect, and an
	// empty result is a normal outcome, not an error.
	res, err = engine.Process(frame, 30.0)
	require.NoError(t, err)
	require.Empty(t, res.Features)
	require.Empty(t, res.Blobs)
}

func TestProcessFeatureCapHolds(t *testing.T) {
	engine := NewEngine(testWidth, testHeight)
	frame := checkerRGBA(testWidth, testHeight)

	for i := 0; i < 5; i++ {
		res, err := engine.Process(frame, 30.0)
		require.NoError(t, err)
		require.LessOrEqual(t, len(res.Features), DefaultMaxFeatures)
	}
}

func TestProcessIdenticalTexturedFrames(t *testing.T) {
	engine := NewEngine(testWidth, testHeight)
	frame := gradientRGBA(testWidth, testHeight)

	res, err := engine.Process(frame, 10.0)
	require.NoError(t, err)
	require.NotEmpty(t, res.Features)
	for _, ft := range res.Features {
		require.Equal(t, 0, ft.Age)
	}

	// Identical next frame: zero-offset SAD wins everywhere, so every feature
	// keeps its position with zero velocity and an incremented age.
	res, err = engine.Process(frame, 10.0)
	require.NoError(t, err)
	require.NotEmpty(t, res.Features)
	for _, ft := range res.Features {
		require.Equal(t, 0.0, ft.VX)
		require.Equal(t, 0.0, ft.VY)
		require.GreaterOrEqual(t, ft.Age, 1)
	}
	require.Empty(t, res.Blobs)
}

// shiftedClusterFrames builds the bright-point scenario: four isolated bright
// pixels on grid positions, then the same four shifted right by 5 px.
func shiftedClusterFrames() (base, shifted []uint8) {
	spots := [][2]int{{45, 45}, {60, 45}, {45, 60}, {60, 60}}
	base = flatRGBA(testWidth, testHeight, 100)
	shifted = flatRGBA(testWidth, testHeight, 100)
	for _, s := range spots {
		setRGBA(base, testWidth, s[0], s[1], 255)
		setRGBA(shifted, testWidth, s[0]+5, s[1], 255)
	}
	return base, shifted
}

func TestProcessShiftedClusterEmitsSingleBlob(t *testing.T) {
	engine := NewEngine(testWidth, testHeight)
	base, shifted := shiftedClusterFrames()

	res, err := engine.Process(base, 30.0)
	require.NoError(t, err)
	require.Len(t, res.Features, 4)
	require.Empty(t, res.Blobs)

	// Identical second frame: features survive with zero velocity.
	res, err = engine.Process(base, 30.0)
	require.NoError(t, err)
	require.Len(t, res.Features, 4)
	require.Empty(t, res.Blobs)

	// Third frame shifts all four bright points by (+5, 0): each feature
	// resolves that displacement, and the co-moving group forms exactly one
	// blob.
	res, err = engine.Process(shifted, 30.0)
	require.NoError(t, err)
	require.Len(t, res.Features, 4)
	for _, ft := range res.Features {
		require.Equal(t, 5.0, ft.VX)
		require.Equal(t, 0.0, ft.VY)
		require.Equal(t, 2, ft.Age)
	}
	require.Len(t, res.Blobs, 1)
	blob := res.Blobs[0]
	require.GreaterOrEqual(t, blob.PointCount, 3)
	require.InDelta(t, 5.0, blob.MeanVX, 1e-9)
	require.InDelta(t, 57.5, blob.Center().X, 1e-9) // members span 50..65
	require.InDelta(t, 52.5, blob.Center().Y, 1e-9) // members span 45..60
}

func TestProcessFeedsTrajectoryTracker(t *testing.T) {
	engine := NewEngine(testWidth, testHeight)
	tracker := NewTrajectoryTracker()
	params := DefaultParams()
	base, shifted := shiftedClusterFrames()

	_, err := engine.Process(base, 30.0)
	require.NoError(t, err)
	_, err = engine.Process(base, 30.0)
	require.NoError(t, err)
	res, err := engine.Process(shifted, 30.0)
	require.NoError(t, err)
	require.Len(t, res.Blobs, 1)

	centers := make([]Point, len(res.Blobs))
	for i, blob := range res.Blobs {
		centers[i] = blob.Center()
	}
	trajectories := tracker.Update(centers, 0.12, params)
	require.Len(t, trajectories, 1)
	require.True(t, trajectories[0].Active)
	require.Equal(t, trajectories[0].LastPoint().Timestamp, 0.12)
}

func TestEngineResetIdempotent(t *testing.T) {
	engine := NewEngine(testWidth, testHeight)
	frame := gradientRGBA(testWidth, testHeight)

	res, err := engine.Process(frame, 10.0)
	require.NoError(t, err)
	require.NotEmpty(t, res.Features)
	require.Positive(t, engine.FeatureCount())

	engine.Reset()
	engine.Reset()
	require.Zero(t, engine.FeatureCount())

	// Feature ids restart from zero after a reset
	res, err = engine.Process(frame, 10.0)
	require.NoError(t, err)
	require.Equal(t, int64(0), res.Features[0].ID)
}
