package lighting

// PointLight describes one artificial point light emitted while night lights
// are active. Descriptors are plain data — the scene engine owns the actual
// light objects.
type PointLight struct {
	// Position is the world-space position of the light.
	Position [3]float32

	// Color is the RGB color of the light.
	Color [3]float32

	// Intensity is the scalar intensity multiplier.
	Intensity float32

	// Range is the falloff distance beyond which the light contributes
	// zero energy.
	Range float32
}

// State is the full set of derived light parameters for one point in
// simulated time. It is a flat immutable value: Compute returns a fresh State
// on every call and nothing in the viewer mutates one after construction.
type State struct {
	// SunPosition is the world-space position of the directional sun light.
	// The Y component never drops below the horizon floor so the sun object
	// stays placeable even when its intensity has reached zero.
	SunPosition [3]float32

	// SunColor is the RGB color of the sun: warm during the sunrise/sunset
	// bands, neutral through midday.
	SunColor [3]float32

	// SunIntensity follows the sine of the sun arc, clamped to [0, 1].
	// Unlike SunPosition it has no floor and is exactly zero outside the
	// 6:00–18:00 daylight window.
	SunIntensity float32

	// AmbientColor is the RGB color of the ambient fill light.
	AmbientColor [3]float32

	// AmbientIntensity is the scalar ambient level: dim at night, brighter
	// during the day.
	AmbientIntensity float32

	// SkyElevation is the procedural sky's sun elevation in degrees.
	SkyElevation float32

	// SkyAzimuth is the procedural sky's sun azimuth in degrees. It sweeps
	// linearly with time and is intentionally unclamped, so values outside
	// the nominal 0–180° range occur outside the daylight window.
	SkyAzimuth float32

	// IsNight reports whether the time falls in the 20:00–6:00 night window.
	// This window is independent of the 6:00–18:00 sun arc, leaving
	// 18:00–20:00 as a dusk transition with zero sun intensity but daytime
	// ambient values.
	IsNight bool

	// PointLights holds the artificial light constellation. Empty unless
	// IsNight is true and night lights are enabled.
	PointLights []PointLight
}
