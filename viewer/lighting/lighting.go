// package lighting derives scene light parameters from a simulated
// time-of-day value. Everything here is pure arithmetic: no state, no I/O,
// safe to recompute on every slider change or every frame.
package lighting

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/helios3d/helios-go/common"
)

// SceneScale is the radius of the sun's arc in world units. It matches the
// default framing distance of the viewer camera so the sun clears the model
// bounds at all times of day.
const SceneScale = 10.0

// sunDepthOffset keeps the sun off the camera's default forward axis so the
// directional light never degenerates to a straight-down-the-lens angle.
const sunDepthOffset = 5.0

// sunHorizonFloor is the minimum normalized sun height. The sun's position
// keeps this floor below the horizon line; its intensity does not.
const sunHorizonFloor = 0.05

// warmBand is the fraction of the sun arc at each end treated as
// sunrise/sunset for the warm color bucket.
const warmBand = 0.2

// Sky dome elevation constants, in degrees.
const (
	skyElevationBase  = 10.0
	skyElevationRange = 80.0
	skyElevationNight = 2.0
)

var (
	// sunWarm is the amber sun color used inside the sunrise/sunset bands.
	sunWarm = [3]float32{1.0, 0.72, 0.45}

	// sunNeutral is the white-ish sun color used through midday.
	sunNeutral = [3]float32{1.0, 0.98, 0.95}

	// ambientDay is the daytime ambient fill color.
	ambientDay = [3]float32{1.0, 1.0, 1.0}

	// ambientNight is the dim blue-grey ambient used during the night window.
	ambientNight = [3]float32{0.42, 0.47, 0.62}
)

const (
	ambientDayIntensity   = 0.5
	ambientNightIntensity = 0.15
)

// IsNight reports whether the given time falls in the night window.
// The window runs from 20:00 up to (but excluding) 6:00. It is deliberately
// narrower than the complement of the 6:00–18:00 sun arc: 18:00–20:00 is a
// dusk zone with zero sun intensity but daytime ambient values.
//
// Parameters:
//   - timeOfDay: simulated clock hours, nominally in [0, 24)
//
// Returns:
//   - bool: true if the time is within the night window
func IsNight(timeOfDay float32) bool {
	return timeOfDay >= 20 || timeOfDay < 6
}

// Compute derives the full lighting state for a time of day. It is a pure
// function of its two inputs: identical inputs always produce identical
// output. Out-of-range times are accepted — the trigonometric mapping
// saturates to zero intensity rather than failing.
//
// The sun travels a half-circle arc from sunrise (6:00) to sunset (18:00).
// Position, intensity, color bucket, sky dome angles, and the artificial
// night constellation are all derived independently per the rules on each
// State field.
//
// Parameters:
//   - timeOfDay: simulated clock hours, nominally in [0, 24)
//   - nightLightsEnabled: whether artificial lights activate during the night window
//
// Returns:
//   - State: the derived, immutable lighting parameters
func Compute(timeOfDay float32, nightLightsEnabled bool) State {
	// Fractional progress of the sun's arc: 0 at sunrise, 1 at sunset.
	t := (timeOfDay - 6) / 12
	angle := math32.Pi * t
	arc := math32.Sin(angle)

	s := State{
		SunPosition: [3]float32{
			math32.Cos(angle) * SceneScale,
			math32.Max(arc, sunHorizonFloor) * SceneScale,
			sunDepthOffset,
		},
		SunIntensity: common.Clamp(arc, 0, 1),
		SunColor:     sunNeutral,
		SkyAzimuth:   t * 180,
		IsNight:      IsNight(timeOfDay),
	}

	// Two-bucket color step, not a continuous blend: warm inside the
	// sunrise/sunset bands, neutral otherwise.
	if t < warmBand || t > 1-warmBand {
		s.SunColor = sunWarm
	}

	if s.IsNight {
		s.AmbientColor = ambientNight
		s.AmbientIntensity = ambientNightIntensity
		s.SkyElevation = skyElevationNight
	} else {
		s.AmbientColor = ambientDay
		s.AmbientIntensity = ambientDayIntensity
		s.SkyElevation = skyElevationBase + math32.Max(0, arc)*skyElevationRange
	}

	if s.IsNight && nightLightsEnabled {
		s.PointLights = nightConstellation()
	}

	return s
}

// nightConstellation returns the fixed artificial light set: one overhead
// cool-white/blue light and two flanking warm-white accents.
func nightConstellation() []PointLight {
	return []PointLight{
		{
			Position:  [3]float32{0, 8, 0},
			Color:     [3]float32{0.65, 0.75, 1.0},
			Intensity: 0.9,
			Range:     25,
		},
		{
			Position:  [3]float32{6, 3, 2},
			Color:     [3]float32{1.0, 0.85, 0.6},
			Intensity: 0.6,
			Range:     18,
		},
		{
			Position:  [3]float32{-6, 3, 2},
			Color:     [3]float32{1.0, 0.85, 0.6},
			Intensity: 0.6,
			Range:     18,
		},
	}
}

// FormatClock renders a time-of-day value as a HH:MM label for logs and the
// UI readout. The value is wrapped into [0, 24) first.
//
// Parameters:
//   - timeOfDay: simulated clock hours
//
// Returns:
//   - string: zero-padded 24-hour clock label
func FormatClock(timeOfDay float32) string {
	h := math32.Mod(timeOfDay, 24)
	if h < 0 {
		h += 24
	}
	hours := int(h)
	minutes := int((h - float32(hours)) * 60)
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
