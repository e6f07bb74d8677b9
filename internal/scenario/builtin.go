package scenario

import (
	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	SolarMass   = 1.98892e30  // kg
	SolarRadius = 696340.0    // km
	EarthMass   = 5.972e24    // kg
	JupiterMass = 1.898e27    // kg
	emissivity  = 0.95
	day         = physics.SecondsPerDay
	year        = physics.SecondsPerYear
	au          = physics.AU
)

func sun() dynamo.BodySpec {
	return dynamo.BodySpec{
		Name: "Sun", Mass: SolarMass, Radius: SolarRadius,
		Temperature: 5772, Albedo: 1, Emissivity: emissivity, Color: "gold",
	}
}

func earth() dynamo.BodySpec {
	return dynamo.BodySpec{
		Name:     "Earth",
		Position: r3.Vec{X: 147e6},
		Velocity: r3.Vec{Y: 30},
		Mass:     EarthMass, Radius: 6371,
		Temperature: 286.7, Albedo: 0.01054, Emissivity: emissivity, Color: "b",
	}
}

func EarthSun() Scenario {
	return Scenario{
		Name:        "earth-sun",
		Description: "the Earth on a near-circular orbit around the Sun",
		Bodies:      []dynamo.BodySpec{sun(), earth()},
		Duration:    365 * day,
		Steps:       365,
		Center:      "Sun",
		Trail:       0.5,
		Playback:    2,
	}
}

func SunEarthMoon() Scenario {
	moon := dynamo.BodySpec{
		Name:     "Moon",
		Position: r3.Vec{X: 147361141, Y: 32485},
		Velocity: r3.Vec{Y: 30.965},
		Mass:     7.36e22, Radius: 1737.4,
		Temperature: 250, Albedo: 0.1054, Emissivity: emissivity, Color: "gray",
	}
	return Scenario{
		Name:        "sun-earth-moon",
		Description: "Sun, Earth and Moon over one year, viewed from the Earth",
		Bodies:      []dynamo.BodySpec{sun(), earth(), moon},
		Duration:    365 * day,
		Steps:       365,
		Center:      "Earth",
		Trail:       0.5,
		Playback:    2,
	}
}

type planet struct {
	name        string
	distance    float64 // AU
	mass        float64
	radius      float64
	temperature float64
	inclination float64 // degrees
	color       string
}

var planets = []planet{
	{"Mercury", 0.39, 3.285e23, 2439.7, 440, 7.0, "gray"},
	{"Venus", 0.72, 4.867e24, 6051.8, 737, 3.39, "orange"},
	{"Earth", 1.00, 5.972e24, 6371, 288, 0, "royalblue"},
	{"Mars", 1.52, 6.39e23, 3389.5, 210, 1.85, "red"},
	{"Jupiter", 5.20, 1.898e27, 69911, 165, 1.31, "chocolate"},
	{"Saturn", 9.58, 5.683e26, 58232, 134, 2.49, "darksalmon"},
	{"Uranus", 19.22, 8.681e25, 25362, 76, 0.77, "cyan"},
	{"Neptune", 30.05, 1.024e26, 24622, 72, 1.77, "blue"},
	{"Pluto", 39.48, 1.309e22, 1188.3, 44, 17.2, "brown"},
}

func SolarSystem() Scenario {
	s := sun()
	s.Temperature = 5778
	bodies := []dynamo.BodySpec{s}
	for _, p := range planets {
		bodies = append(bodies, Circular(p.name, s, p.distance*au, p.inclination, dynamo.BodySpec{
			Mass: p.mass, Radius: p.radius, Temperature: p.temperature,
			Albedo: 0.3, Emissivity: emissivity, Color: p.color,
		}))
	}
	return Scenario{
		Name:        "solar-system",
		Description: "the Sun and nine planets on inclined circular orbits",
		Bodies:      bodies,
		Duration:    250 * year,
		Steps:       10000,
		Center:      "Jupiter",
		Trail:       0.02,
		Playback:    60,
	}
}

func Jupiter() Scenario {
	j := dynamo.BodySpec{
		Name: "Jupiter", Mass: JupiterMass, Radius: 71492,
		Temperature: 165, Albedo: 0.52, Emissivity: emissivity, Color: "orange",
	}
	moon := func(name string, distance, inclination, mass, radius, temp, albedo float64, color string) dynamo.BodySpec {
		return Circular(name, j, distance, inclination, dynamo.BodySpec{
			Mass: mass, Radius: radius, Temperature: temp,
			Albedo: albedo, Emissivity: emissivity, Color: color,
		})
	}
	return Scenario{
		Name:        "jupiter",
		Description: "Jupiter and the Galilean moons over 100 days",
		Bodies: []dynamo.BodySpec{
			j,
			moon("Io", 421700, 0.036, 8.9319e22, 1821.6, 130, 0.63, "red"),
			moon("Europa", 671034, 0.47, 4.7998e22, 1560.8, 102, 0.68, "cyan"),
			moon("Ganymede", 1070400, 0.2, 1.4819e23, 2634.1, 110, 0.43, "blue"),
			moon("Callisto", 1882700, 2.02, 1.0759e23, 2410.3, 134, 0.19, "gray"),
		},
		Duration: 100 * day,
		Steps:    10000,
		Center:   "Jupiter",
		Trail:    0.05,
		Playback: 60,
	}
}

// Trisolar is the figure-eight three-body choreography scaled up to solar
// masses and AU distances.
func Trisolar() Scenario {
	const scale = 3.35
	positions := []r3.Vec{
		{X: 0.97000436, Y: -0.24308753},
		{X: -0.97000436, Y: 0.24308753},
		{},
	}
	velocities := []r3.Vec{
		{X: 0.466203685, Y: 0.43236573},
		{X: 0.466203685, Y: -0.43236573},
		{X: -0.93240737, Y: -0.86473146},
	}
	names := []string{"Star1", "Star2", "Star3"}
	colors := []string{"r", "g", "b"}

	bodies := make([]dynamo.BodySpec, len(names))
	for i := range names {
		bodies[i] = dynamo.BodySpec{
			Name:     names[i],
			Position: r3.Scale(scale*au, positions[i]),
			Velocity: r3.Scale(scale*au/year, velocities[i]),
			Mass:     SolarMass, Radius: SolarRadius,
			Temperature: 5772, Albedo: 1, Emissivity: emissivity, Color: colors[i],
		}
	}
	return Scenario{
		Name:        "trisolar",
		Description: "three equal stars on a figure-eight orbit",
		Bodies:      bodies,
		Duration:    25 * year,
		Steps:       25000,
		Trail:       0.2,
		Playback:    5,
	}
}

func AlphaCentauri() Scenario {
	const ua = 147e6
	a := dynamo.BodySpec{
		Name: "Centauri A", Mass: 1.1 * SolarMass, Radius: SolarRadius * 1.227,
		Temperature: 5800, Albedo: 1, Emissivity: emissivity, Color: "gold",
	}
	b := Circular("Centauri B", a, 25*ua, 0, dynamo.BodySpec{
		Mass: 0.907 * SolarMass, Radius: SolarRadius * 0.865,
		Temperature: 5260, Albedo: 1, Emissivity: emissivity, Color: "goldenrod",
	})
	// C orbits the A+B pair.
	pair := a
	pair.Mass += b.Mass
	c := Circular("Centauri C", pair, 60*ua, 0, dynamo.BodySpec{
		Mass: 0.1221 * SolarMass, Radius: SolarRadius * 0.1542,
		Temperature: 3042, Albedo: 1, Emissivity: emissivity, Color: "darkred",
	})
	p := Circular("Proxima b", a, ua, 0, dynamo.BodySpec{
		Mass: 1.17 * EarthMass, Radius: 1737.4,
		Temperature: 250, Albedo: 0.1054, Emissivity: emissivity, Color: "blue",
	})
	return Scenario{
		Name:        "alpha-centauri",
		Description: "a hierarchical triple star with one planet around the primary",
		Bodies:      []dynamo.BodySpec{a, b, c, p},
		Duration:    100 * 365 * day,
		Steps:       1000,
		Trail:       1,
		Playback:    5,
	}
}

func GammaCephei() Scenario {
	a := dynamo.BodySpec{
		Name: "Gamma Cephei A", Mass: 1.05 * SolarMass, Radius: 1.2 * SolarRadius,
		Temperature: 4900, Albedo: 1, Emissivity: emissivity, Color: "r",
	}
	b := Circular("Gamma Cephei B", a, 19.56*au, 119.3, dynamo.BodySpec{
		Mass: 0.4 * SolarMass, Radius: 0.7 * SolarRadius,
		Temperature: 3500, Albedo: 1, Emissivity: emissivity, Color: "b",
	})
	p := Circular("Planet", a, 1.9*au, 0, dynamo.BodySpec{
		Mass: 1.7 * JupiterMass, Radius: 0.5 * 69911,
		Temperature: 300, Albedo: 0.3, Emissivity: emissivity, Color: "c",
	})
	return Scenario{
		Name:        "gamma-cephei",
		Description: "a binary with a highly inclined companion and a giant planet",
		Bodies:      []dynamo.BodySpec{a, b, p},
		Duration:    100 * year,
		Steps:       50000,
		Center:      "Gamma Cephei A",
		Trail:       0.4,
		Playback:    10,
	}
}
