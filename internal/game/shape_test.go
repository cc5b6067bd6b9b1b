package game

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestTriangle_PointsAlongHeading(t *testing.T) {
	pos := geometry.Vector2D{X: 100, Y: 50}
	tri := triangle(pos, geometry.Vector2D{X: 0, Y: 2})

	assert.InDelta(t, 100, tri[0].X, 1e-9)
	assert.InDelta(t, 50+boidSize, tri[0].Y, 1e-9)
	// wings sit behind the centre, mirrored across the heading
	assert.Less(t, tri[1].Y, pos.Y)
	assert.Less(t, tri[2].Y, pos.Y)
	assert.InDelta(t, pos.X-tri[1].X, tri[2].X-pos.X, 1e-9)
}

func TestTriangle_ZeroHeading(t *testing.T) {
	tri := triangle(geometry.Zero, geometry.Zero)
	assert.InDelta(t, boidSize, tri[0].X, 1e-9)
	assert.InDelta(t, 0, tri[0].Y, 1e-9)
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		n      int
		want   []geometry.Vector2D
	}{
		{"too short", []float64{5}, 10, nil},
		{"scaled to peak", []float64{0, 10, 5}, 10, []geometry.Vector2D{{X: 0, Y: 20}, {X: 50, Y: 0}, {X: 100, Y: 10}}},
		{"keeps the tail", []float64{99, 4, 4}, 2, []geometry.Vector2D{{X: 0, Y: 0}, {X: 100, Y: 0}}},
		{"all zero", []float64{0, 0}, 5, []geometry.Vector2D{{X: 0, Y: 20}, {X: 100, Y: 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sparkline(tt.values, tt.n, 0, 0, 100, 20)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, got[i].Eq(tt.want[i]), "point %d = %v; want %v", i, got[i], tt.want[i])
			}
		})
	}
	assert.False(t, math.IsNaN(sparkline([]float64{1, 2}, 2, 0, 0, 1, 1)[0].Y))
}
