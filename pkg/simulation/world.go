package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
)

// World is the rectangle [0, Width) x [0, Height) agents live in and the rule
// applied when they cross its edges.
type World struct {
	Width, Height float64
	Boundary      string
}

// Contain brings an agent that left the world back according to the boundary mode.
func (w World) Contain(a *Agent) {
	switch w.Boundary {
	case BoundaryWrap:
		a.Position.X = wrap(a.Position.X, w.Width)
		a.Position.Y = wrap(a.Position.Y, w.Height)
	case BoundaryBounce:
		a.Position.X, a.Heading.X = bounce(a.Position.X, a.Heading.X, w.Width)
		a.Position.Y, a.Heading.Y = bounce(a.Position.Y, a.Heading.Y, w.Height)
	}
}

// RandomPosition maps two uniform samples in [0, 1) to a point of the world.
func (w World) RandomPosition(u, v float64) geometry.Vector2D {
	return geometry.Vector2D{X: u * w.Width, Y: v * w.Height}
}

func wrap(x, size float64) float64 {
	x = math.Mod(x, size)
	if x < 0 {
		x += size
	}
	return x
}

// bounce reflects the heading component pointing out of [0, size].
// Reflection keeps the heading unit length.
func bounce(x, h, size float64) (float64, float64) {
	if x < 0 {
		return -x, math.Abs(h)
	}
	if x > size {
		return 2*size - x, -math.Abs(h)
	}
	return x, h
}
