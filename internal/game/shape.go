package game

import (
	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
)

// boidSize is the distance from an agent's centre to its nose, in pixels.
const boidSize = 7.0

// triangle returns the nose, right wing and left wing of an agent drawn at
// position and pointing along heading.
func triangle(position, heading geometry.Vector2D) [3]geometry.Vector2D {
	if heading.IsZero() {
		heading = geometry.Vector2D{X: 1}
	}
	h := heading.Normalize()
	return [3]geometry.Vector2D{
		position.Add(h.Mul(boidSize)),
		position.Add(h.Rotate(2.5).Mul(boidSize * 0.75)),
		position.Add(h.Rotate(-2.5).Mul(boidSize * 0.75)),
	}
}

// sparkline maps the last n values onto a polyline inside the w×h box at (x, y).
// The largest value touches the top edge, zero the bottom one.
func sparkline(values []float64, n int, x, y, w, h float64) []geometry.Vector2D {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	if len(values) < 2 {
		return nil
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	step := w / float64(len(values)-1)
	points := make([]geometry.Vector2D, len(values))
	for i, v := range values {
		ratio := 0.0
		if peak > 0 {
			ratio = v / peak
		}
		points[i] = geometry.Vector2D{X: x + float64(i)*step, Y: y + h - ratio*h}
	}
	return points
}
