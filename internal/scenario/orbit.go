package scenario

import (
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

var xAxis = r3.Vec{X: 1}

// OrbitalVelocity is the circular-orbit speed in km/s at radius km around a
// central mass in kg.
func OrbitalVelocity(centralMass, radius float64) float64 {
	return physics.CircularSpeed(centralMass, radius)
}

// Incline rotates a position and velocity about the x axis by deg degrees.
func Incline(pos, vel r3.Vec, deg float64) (r3.Vec, r3.Vec) {
	if deg == 0 {
		return pos, vel
	}
	rot := r3.NewRotation(deg*math.Pi/180, xAxis)
	return rot.Rotate(pos), rot.Rotate(vel)
}

// Circular places a copy of tmpl on a circular orbit of the given radius
// around central. The orbit starts on the +x side of central, moving +y,
// then is inclined about x. The result inherits central's motion.
func Circular(name string, central dynamo.BodySpec, distance, inclination float64, tmpl dynamo.BodySpec) dynamo.BodySpec {
	pos := r3.Vec{X: distance}
	vel := r3.Vec{Y: OrbitalVelocity(central.Mass, distance)}
	pos, vel = Incline(pos, vel, inclination)

	b := tmpl
	b.Name = name
	b.Position = r3.Add(central.Position, pos)
	b.Velocity = r3.Add(central.Velocity, vel)
	return b
}
