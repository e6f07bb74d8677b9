package physics

import (
	"math"
	"testing"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	sunMass   = 1.98892e30
	earthMass = 5.972e24
)

func sun() dynamo.BodySpec {
	return dynamo.BodySpec{
		Name: "Sun", Mass: sunMass, Radius: 696340,
		Temperature: 5772, Albedo: 1, Emissivity: 0.95,
	}
}

func planet(name string, distance float64) dynamo.BodySpec {
	return dynamo.BodySpec{
		Name:     name,
		Position: r3.Vec{X: distance},
		Velocity: r3.Vec{Y: CircularSpeed(sunMass, distance)},
		Mass:     earthMass, Radius: 6371,
		Temperature: 286.7, Albedo: 0.3, Emissivity: 0.95,
	}
}

func snapshotOf(t *testing.T, specs ...dynamo.BodySpec) (*dynamo.System, *dynamo.Snapshot) {
	t.Helper()
	sys, err := dynamo.FromSpecs(specs)
	require.NoError(t, err)
	return sys, sys.Capture(0, nil)
}

func TestGravity_TwoBodySymmetry(t *testing.T) {
	pairs := [][2]dynamo.BodySpec{
		{sun(), planet("Earth", 1.47e8)},
		{planet("A", 1e6), planet("B", -3.3e7)},
		{
			{Name: "X", Position: r3.Vec{X: 1, Y: 2, Z: 3}, Mass: 7e22, Radius: 1, Temperature: 1, Emissivity: 1},
			{Name: "Y", Position: r3.Vec{X: -4e5, Y: 9e3, Z: 1e7}, Mass: 3e20, Radius: 1, Temperature: 1, Emissivity: 1},
		},
	}
	for _, p := range pairs {
		_, snap := snapshotOf(t, p[0], p[1])
		out := make([]r3.Vec, 2)
		require.NoError(t, NewGravity().Forces(snap, out))

		assert.Equal(t, out[0], r3.Scale(-1, out[1]), "%s/%s", p[0].Name, p[1].Name)
		assert.NotZero(t, r3.Norm(out[0]))
	}
}

func TestGravity_MagnitudeAndDirection(t *testing.T) {
	_, snap := snapshotOf(t, sun(), planet("Earth", 1.47e8))
	out := make([]r3.Vec, 2)
	require.NoError(t, NewGravity().Forces(snap, out))

	r := 1.47e8 * MetersPerKm
	want := G * sunMass * earthMass / (r * r)
	assert.InEpsilon(t, want, r3.Norm(out[1]), 1e-12)
	assert.Less(t, out[1].X, 0.0, "earth is pulled toward the sun")
	assert.Greater(t, out[0].X, 0.0, "sun is pulled toward the earth")
}

func TestGravity_ParallelMatchesSerial(t *testing.T) {
	specs := []dynamo.BodySpec{sun()}
	for i, d := range []float64{5.8e7, 1.08e8, 1.47e8, 2.28e8, 7.78e8, 1.43e9, 2.87e9} {
		p := planet(string(rune('a'+i)), d)
		p.Position.Z = float64(i) * 1e5
		specs = append(specs, p)
	}
	_, snap := snapshotOf(t, specs...)

	serial := make([]r3.Vec, len(specs))
	parallel := make([]r3.Vec, len(specs))
	require.NoError(t, NewGravity().Forces(snap, serial))
	require.NoError(t, (&Gravity{G: G, Workers: 3}).Forces(snap, parallel))

	assert.Equal(t, serial, parallel)
}

func TestGravity_Singularity(t *testing.T) {
	a := planet("A", 1e8)
	b := planet("B", 1e8)
	_, snap := snapshotOf(t, sun(), a, b)

	err := NewGravity().Forces(snap, make([]r3.Vec, 3))
	require.ErrorIs(t, err, dynamo.ErrSingularity)

	var se *dynamo.SingularityError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "A", se.A)
	assert.Equal(t, "B", se.B)
}

func TestGravity_NearCoincident(t *testing.T) {
	// r³ underflows to zero long before r does.
	for _, x := range []float64{1e-120, 1e-200, 1e-300} {
		a := planet("A", 0)
		b := planet("B", x)
		_, snap := snapshotOf(t, a, b)

		out := make([]r3.Vec, 2)
		err := NewGravity().Forces(snap, out)
		require.ErrorIs(t, err, dynamo.ErrSingularity, "separation %g km", x)
	}
}

func TestGravity_BufferMismatch(t *testing.T) {
	_, snap := snapshotOf(t, sun(), planet("Earth", 1e8))
	assert.Error(t, NewGravity().Forces(snap, make([]r3.Vec, 1)))
	assert.Error(t, NewRadiation().Equilibrium(snap, make([]float64, 3)))
}

func TestRadiation_SelfLuminousFixedPoint(t *testing.T) {
	_, snap := snapshotOf(t, sun(), planet("Earth", 1.47e8))
	out := make([]float64, 2)
	require.NoError(t, NewRadiation().Equilibrium(snap, out))

	assert.Equal(t, 5772.0*5772*5772*5772, out[0])
	assert.Equal(t, 5772.0, math.Sqrt(math.Sqrt(out[0])))
}

func TestRadiation_Formula(t *testing.T) {
	_, snap := snapshotOf(t, sun(), planet("Earth", 1.47e8))
	out := make([]float64, 2)
	require.NoError(t, NewRadiation().Equilibrium(snap, out))

	ratio := 696340.0 / 1.47e8
	want := (1 - 0.3) / (4 * 0.95) * ratio * ratio * math.Pow(5772, 4)
	if !scalar.EqualWithinRel(want, out[1], 1e-12) {
		t.Errorf("equilibrium = %g, want %g", out[1], want)
	}

	temp := math.Sqrt(math.Sqrt(out[1]))
	assert.InDelta(t, 260, temp, 5)
}

func TestRadiation_FluxFalloff(t *testing.T) {
	temps := make([]float64, 0, 4)
	for _, d := range []float64{0.5e8, 1e8, 2e8, 4e8} {
		_, snap := snapshotOf(t, sun(), planet("P", d))
		out := make([]float64, 2)
		require.NoError(t, NewRadiation().Equilibrium(snap, out))
		temps = append(temps, math.Sqrt(math.Sqrt(out[1])))
	}
	for i := 1; i < len(temps); i++ {
		assert.Less(t, temps[i], temps[i-1], "doubling distance must cool the body")
		// T ∝ d^(-1/2) for a single radiator.
		assert.InEpsilon(t, temps[i-1]/math.Sqrt2, temps[i], 1e-9)
	}
}

func TestRadiation_IgnoresOwnTemperatureWhenAbsorbing(t *testing.T) {
	hot := planet("P", 1e8)
	hot.Temperature = 1e4
	_, snapHot := snapshotOf(t, sun(), hot)
	_, snapCold := snapshotOf(t, sun(), planet("P", 1e8))

	a, b := make([]float64, 2), make([]float64, 2)
	require.NoError(t, NewRadiation().Equilibrium(snapHot, a))
	require.NoError(t, NewRadiation().Equilibrium(snapCold, b))
	assert.Equal(t, a[1], b[1])
}

func TestRadiation_Singularity(t *testing.T) {
	p := planet("P", 0)
	p.Velocity = r3.Vec{}
	_, snap := snapshotOf(t, sun(), p)
	err := NewRadiation().Equilibrium(snap, make([]float64, 2))
	assert.ErrorIs(t, err, dynamo.ErrSingularity)
}

func TestRadiation_NearCoincident(t *testing.T) {
	p := planet("P", 1e-300)
	p.Velocity = r3.Vec{}
	_, snap := snapshotOf(t, sun(), p)

	out := make([]float64, 2)
	err := NewRadiation().Equilibrium(snap, out)
	require.ErrorIs(t, err, dynamo.ErrSingularity)
	for _, q := range out {
		assert.False(t, math.IsInf(q, 0) || math.IsNaN(q))
	}
}

func TestDiagnostics(t *testing.T) {
	sys, _ := snapshotOf(t, sun(), planet("Earth", 1.47e8))
	p := Momentum(sys.Bodies)
	assert.InEpsilon(t, earthMass*CircularSpeed(sunMass, 1.47e8), p.Y, 1e-12)

	l := AngularMomentum(sys.Bodies)
	assert.InEpsilon(t, earthMass*1.47e8*CircularSpeed(sunMass, 1.47e8), l.Z, 1e-12)

	// Circular orbit: E = -GMm / 2r.
	r := 1.47e8 * MetersPerKm
	assert.InEpsilon(t, -G*sunMass*earthMass/(2*r), Energy(sys.Bodies), 1e-9)

	sys.Bodies[1].Position = r3.Vec{}
	assert.True(t, math.IsInf(PotentialEnergy(sys.Bodies), -1))
}
