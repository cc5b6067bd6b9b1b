package simulation

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func testLimits() Limits {
	return Limits{
		MinSpeed:               1,
		MaxSpeed:               10,
		MaxAcceleration:        0.5,
		MinAngularVelocity:     -2,
		MaxAngularVelocity:     2,
		MaxAngularAcceleration: 0.25,
	}
}

func TestNewAgent(t *testing.T) {
	a := NewAgent(3, geometry.Vector2D{X: 1, Y: 2}, geometry.Vector2D{X: 0, Y: 5}, testLimits())

	assert.Equal(t, 3, a.ID)
	assert.True(t, a.Heading.Eq(geometry.Vector2D{X: 0, Y: 1}), "heading should be normalised, got %v", a.Heading)
	assert.Equal(t, 1.0, a.Speed, "agents start at MinSpeed")
	assert.Equal(t, 0.0, a.AngularVelocity)
	assert.True(t, a.Velocity().Eq(geometry.Vector2D{X: 0, Y: 1}))

	z := NewAgent(0, geometry.Zero, geometry.Zero, testLimits())
	assert.True(t, z.Heading.Eq(geometry.Vector2D{X: 1}), "zero heading faces +X")
}

func TestAgent_IntegrateKeepsInvariants(t *testing.T) {
	limits := testLimits()
	rng := rand.New(rand.NewPCG(1, 2))
	a := NewAgent(0, geometry.Zero, geometry.Vector2D{X: 1}, limits)

	for frame := 0; frame < 2000; frame++ {
		prevSpeed, prevOmega := a.Speed, a.AngularVelocity

		desired := geometry.Vector2D{X: rng.NormFloat64(), Y: rng.NormFloat64()}
		if frame%7 == 0 {
			desired = geometry.Zero
		}
		a.Integrate(desired, 0.005+rng.Float64()*0.05)

		require.GreaterOrEqual(t, a.Speed, limits.MinSpeed, "frame %d", frame)
		require.LessOrEqual(t, a.Speed, limits.MaxSpeed, "frame %d", frame)
		require.GreaterOrEqual(t, a.AngularVelocity, limits.MinAngularVelocity, "frame %d", frame)
		require.LessOrEqual(t, a.AngularVelocity, limits.MaxAngularVelocity, "frame %d", frame)
		require.LessOrEqual(t, math.Abs(a.Speed-prevSpeed), limits.MaxAcceleration+tolerance, "frame %d", frame)
		require.LessOrEqual(t, math.Abs(a.AngularVelocity-prevOmega), limits.MaxAngularAcceleration+tolerance, "frame %d", frame)
		require.InDelta(t, 1.0, a.Heading.Len(), tolerance, "frame %d", frame)
	}
}

func TestAgent_IntegrateZeroDesiredGoesStraight(t *testing.T) {
	a := NewAgent(0, geometry.Vector2D{X: 10, Y: 10}, geometry.Vector2D{X: 1, Y: 1}, testLimits())
	a.Speed = 4
	heading := a.Heading

	a.Integrate(geometry.Zero, 0.5)

	assert.True(t, a.Heading.Eq(heading), "heading changed to %v", a.Heading)
	assert.Equal(t, 4.0, a.Speed)
	want := geometry.Vector2D{X: 10, Y: 10}.Add(heading.Mul(4 * 0.5))
	assert.True(t, a.Position.Eq(want), "position = %v; want %v", a.Position, want)
}

func TestAgent_IntegrateIgnoresBadDelta(t *testing.T) {
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		a := NewAgent(0, geometry.Zero, geometry.Vector2D{X: 1}, testLimits())
		before := *a
		a.Integrate(geometry.Vector2D{X: 0, Y: 1}, dt)
		assert.Equal(t, before, *a, "dt=%v", dt)
	}
}

func TestAgent_TurnsTowardDesired(t *testing.T) {
	a := NewAgent(0, geometry.Zero, geometry.Vector2D{X: 1}, testLimits())
	desired := geometry.Vector2D{X: 0, Y: 1}

	a.Integrate(desired, 0.1)
	assert.Greater(t, a.AngularVelocity, 0.0, "should turn counter-clockwise")
	assert.InDelta(t, 0.25, a.AngularVelocity, tolerance, "first frame limited by angular acceleration")

	prevGap := math.Pi / 2
	for i := 0; i < 200; i++ {
		a.Integrate(desired, 0.1)
		gap := math.Abs(geometry.SignedAngle(a.Heading, desired))
		if gap > prevGap+tolerance {
			// an overshoot never exceeds one frame of turn at full angular velocity
			assert.LessOrEqual(t, gap, testLimits().MaxAngularVelocity*0.1+tolerance)
		}
		prevGap = gap
	}
	assert.InDelta(t, 0.0, geometry.SignedAngle(a.Heading, desired), 1e-3, "heading should settle on desired")
}

func TestAgent_AcceleratesFromRestTowardTargetAhead(t *testing.T) {
	limits := testLimits()
	limits.MinSpeed = 0
	a := NewAgent(0, geometry.Zero, geometry.Vector2D{X: 1}, limits)
	require.Equal(t, 0.0, a.Speed)

	target := geometry.Vector2D{X: 1000}
	prevSpeed, prevDist := a.Speed, a.Position.DistanceTo(target)
	for frame := 0; frame < 60; frame++ {
		a.Integrate(target.Sub(a.Position), 1.0/60)

		assert.GreaterOrEqual(t, a.Speed, prevSpeed, "speed must not decrease")
		assert.LessOrEqual(t, a.Speed-prevSpeed, limits.MaxAcceleration+tolerance)
		assert.LessOrEqual(t, a.Speed, limits.MaxSpeed)

		dist := a.Position.DistanceTo(target)
		assert.Less(t, dist, prevDist, "agent should close in on the target")
		assert.Equal(t, 0.0, a.Position.Y, "straight line, no turning")
		prevSpeed, prevDist = a.Speed, dist
	}
	assert.Equal(t, limits.MaxSpeed, a.Speed, "20 frames of 0.5 reach max speed")
}
