package physics

// Kinematic state is stored in kilometres and kilometres per second, which
// keeps solar-system coordinates near 1e8 instead of 1e11. Constants are SI,
// so every pairwise term converts separations to metres before use and the
// integrator converts m/s² back to km/s².
const (
	// G is the gravitational constant [m³ kg⁻¹ s⁻²].
	G = 6.6743015e-11

	// MetersPerKm converts stored lengths to SI.
	MetersPerKm = 1e3

	// GKm is G expressed in km³ kg⁻¹ s⁻², for circular-orbit speeds in km/s.
	GKm = G * 1e-9

	// KelvinOffset converts kelvin to degrees Celsius.
	KelvinOffset = 273.15

	SecondsPerDay  = 24 * 3600
	SecondsPerYear = 365.25 * SecondsPerDay

	// AU is one astronomical unit in kilometres.
	AU = 1.496e8
)
