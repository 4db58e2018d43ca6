package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios3d/helios-go/viewer/lighting"
	"github.com/helios3d/helios-go/viewer/scene"
)

func lightingStateForTest(sunIntensity float32, isNight bool) lighting.State {
	ambient := float32(0.5)
	if isNight {
		ambient = 0.15
	}
	return lighting.State{
		SunColor:         [3]float32{1, 0.98, 0.95},
		SunIntensity:     sunIntensity,
		AmbientIntensity: ambient,
		IsNight:          isNight,
	}
}

func TestScreenRayCenterPixelLooksAtTarget(t *testing.T) {
	position := [3]float32{0, 5, 10}
	target := [3]float32{0, 0, 0}

	origin, dir := screenRay(position, target, defaultFOVY, 800, 600, 400, 300)

	assert.Equal(t, position, origin)
	// A center-pixel ray points straight at the target.
	assert.InDelta(t, 0, dir[0], 1e-5)
	assert.Less(t, dir[1], float32(0))
	assert.Less(t, dir[2], float32(0))
}

func TestScreenRayLeftPixelBendsLeft(t *testing.T) {
	position := [3]float32{0, 0, 10}
	target := [3]float32{0, 0, 0}

	_, center := screenRay(position, target, defaultFOVY, 800, 600, 400, 300)
	_, left := screenRay(position, target, defaultFOVY, 800, 600, 0, 300)

	assert.NotEqual(t, center[0], left[0])
	assert.Less(t, left[0], center[0], "pixels left of center produce rays bending toward -X")
}

func TestIntersectGround(t *testing.T) {
	// Straight down from above.
	point, ok := intersectGround([3]float32{3, 10, -2}, [3]float32{0, -1, 0})
	require.True(t, ok)
	assert.Equal(t, [3]float32{3, 0, -2}, point)

	// Parallel to the plane.
	_, ok = intersectGround([3]float32{0, 5, 0}, [3]float32{1, 0, 0})
	assert.False(t, ok)

	// Pointing away from the plane.
	_, ok = intersectGround([3]float32{0, 5, 0}, [3]float32{0, 1, 0})
	assert.False(t, ok)
}

func TestCenterRayHitsGroundBelowTarget(t *testing.T) {
	position := [3]float32{0, 5, 10}
	target := [3]float32{0, 0, 0}

	origin, dir := screenRay(position, target, defaultFOVY, 800, 600, 400, 300)
	point, ok := intersectGround(origin, dir)

	require.True(t, ok)
	assert.InDelta(t, 0, point[0], 1e-3)
	assert.InDelta(t, 0, point[2], 1e-3)
}

func TestIntersectSphere(t *testing.T) {
	// Dead-center hit from outside.
	tHit, ok := intersectSphere([3]float32{0, 0, 10}, [3]float32{0, 0, -1}, [3]float32{0, 0, 0}, 1)
	require.True(t, ok)
	assert.InDelta(t, 9, tHit, 1e-5)

	// Clean miss.
	_, ok = intersectSphere([3]float32{0, 5, 10}, [3]float32{0, 0, -1}, [3]float32{0, 0, 0}, 1)
	assert.False(t, ok)

	// Sphere behind the ray origin.
	_, ok = intersectSphere([3]float32{0, 0, -10}, [3]float32{0, 0, -1}, [3]float32{0, 0, 0}, 1)
	assert.False(t, ok)
}

func TestPickMarkerReportsClosestHit(t *testing.T) {
	markers := []scene.Marker{
		{ID: "far", Position: [3]float32{0, 0, -5}},
		{ID: "near", Position: [3]float32{0, 0, 5}},
		{ID: "offside", Position: [3]float32{50, 0, 0}},
	}
	origin := [3]float32{0, 0, 10}
	dir := [3]float32{0, 0, -1}

	id, ok := pickMarker(origin, dir, markers, markerPickRadius)
	require.True(t, ok)
	assert.Equal(t, "near", id, "the marker nearest the camera wins")
}

func TestPickMarkerMiss(t *testing.T) {
	markers := []scene.Marker{{ID: "a", Position: [3]float32{100, 0, 0}}}

	_, ok := pickMarker([3]float32{0, 0, 10}, [3]float32{0, 0, -1}, markers, markerPickRadius)
	assert.False(t, ok)

	_, ok = pickMarker([3]float32{0, 0, 10}, [3]float32{0, 0, -1}, nil, markerPickRadius)
	assert.False(t, ok)
}

func TestSkyClearColorDayVersusNight(t *testing.T) {
	day := skyClearColor(lightingStateForTest(1.0, false))
	night := skyClearColor(lightingStateForTest(0.0, true))

	assert.Greater(t, day.B, night.B, "day sky is brighter than night sky")
	assert.Greater(t, day.R, night.R)
	assert.Equal(t, 1.0, day.A)
	assert.Equal(t, 1.0, night.A)
}
