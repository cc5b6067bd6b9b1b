package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
)

// Limits bounds the motion of a single Agent. It is copied from Config and
// never changes during a run.
type Limits struct {
	MinSpeed               float64
	MaxSpeed               float64
	MaxAcceleration        float64 // max |Δspeed| per frame
	MinAngularVelocity     float64
	MaxAngularVelocity     float64
	MaxAngularAcceleration float64 // max |Δangular velocity| per frame
}

// Agent is one boid: a position, a unit heading and the scalar speed and
// angular velocity that move it.
type Agent struct {
	ID              int
	Position        geometry.Vector2D
	Heading         geometry.Vector2D
	Speed           float64
	AngularVelocity float64

	limits Limits
}

// AgentState is the read-only copy of an Agent handed to renderers.
type AgentState struct {
	ID              int
	Position        geometry.Vector2D
	Heading         geometry.Vector2D
	Speed           float64
	AngularVelocity float64
}

// NewAgent places an agent at position facing heading. A zero heading faces +X.
// The agent starts at MinSpeed without any rotation, both clamped into range.
func NewAgent(id int, position, heading geometry.Vector2D, limits Limits) *Agent {
	h := heading.Normalize()
	if h.IsZero() {
		h = geometry.Vector2D{X: 1}
	}
	return &Agent{
		ID:              id,
		Position:        position,
		Heading:         h,
		Speed:           limits.MinSpeed,
		AngularVelocity: geometry.Clamp(0, limits.MinAngularVelocity, limits.MaxAngularVelocity),
		limits:          limits,
	}
}

// Velocity is Heading scaled by Speed.
func (a *Agent) Velocity() geometry.Vector2D {
	return a.Heading.Mul(a.Speed)
}

// Limits returns the bounds this agent integrates under.
func (a *Agent) Limits() Limits {
	return a.limits
}

// State copies the agent for readers outside the flock.
func (a *Agent) State() AgentState {
	return AgentState{
		ID:              a.ID,
		Position:        a.Position,
		Heading:         a.Heading,
		Speed:           a.Speed,
		AngularVelocity: a.AngularVelocity,
	}
}

// Integrate advances the agent by dt seconds while turning toward desired.
// A zero desired direction keeps the agent on its current course and speed.
// Per call, speed moves by at most MaxAcceleration and angular velocity by at
// most MaxAngularAcceleration, and both stay within their [min, max] range.
func (a *Agent) Integrate(desired geometry.Vector2D, dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	engaged := desired.IsFinite() && !desired.IsZero()

	// 1. How far do we still have to turn
	diff := 0.0
	if engaged {
		diff = geometry.SignedAngle(a.Heading, desired)
	}

	// 2. Angular velocity that would close the gap this frame, no faster than
	// the agent can still brake to zero before reaching it, then rate limited.
	target := diff / dt
	brake := math.Sqrt(2 * a.limits.MaxAngularAcceleration * math.Abs(diff) / dt)
	target = math.Copysign(math.Min(math.Abs(target), brake), diff)
	omega := geometry.Approach(a.AngularVelocity, target, a.limits.MaxAngularAcceleration)
	a.AngularVelocity = geometry.Clamp(omega, a.limits.MinAngularVelocity, a.limits.MaxAngularVelocity)

	// 3. Turn, renormalising so rounding never shrinks the heading
	a.Heading = a.Heading.Rotate(a.AngularVelocity * dt).Normalize()

	// 4. Throttle
	targetSpeed := a.Speed
	if engaged {
		targetSpeed = a.limits.MaxSpeed
	}
	speed := geometry.Approach(a.Speed, targetSpeed, a.limits.MaxAcceleration)
	a.Speed = geometry.Clamp(speed, a.limits.MinSpeed, a.limits.MaxSpeed)

	// 5. Move
	a.Position = a.Position.Add(a.Heading.Mul(a.Speed * dt))
}
