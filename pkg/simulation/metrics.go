package simulation

import "github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"

// FrameMetrics is what one simulated frame adds to the metrics log.
// Collisions is the number of distinct agent pairs closer than the collision
// radius at the end of that frame, not a running total.
type FrameMetrics struct {
	Frame           int               `json:"frame"`
	Target          geometry.Vector2D `json:"target"`
	AverageDistance float64           `json:"averageDistance"`
	Collisions      int               `json:"collisions"`
}

// Metrics is the append-only per-frame log kept by a Flock.
type Metrics struct {
	frames []FrameMetrics
}

func (m *Metrics) record(fm FrameMetrics) {
	m.frames = append(m.frames, fm)
}

// Len is the number of frames recorded.
func (m *Metrics) Len() int { return len(m.frames) }

// Frames returns a copy of the log in frame order.
func (m *Metrics) Frames() []FrameMetrics {
	out := make([]FrameMetrics, len(m.frames))
	copy(out, m.frames)
	return out
}

// Last returns the most recent frame, false when nothing was recorded yet.
func (m *Metrics) Last() (FrameMetrics, bool) {
	if len(m.frames) == 0 {
		return FrameMetrics{}, false
	}
	return m.frames[len(m.frames)-1], true
}

// Distances is the average distance to target series.
func (m *Metrics) Distances() []float64 {
	out := make([]float64, len(m.frames))
	for i, f := range m.frames {
		out[i] = f.AverageDistance
	}
	return out
}

// CollisionCounts is the per-frame collision series.
func (m *Metrics) CollisionCounts() []int {
	out := make([]int, len(m.frames))
	for i, f := range m.frames {
		out[i] = f.Collisions
	}
	return out
}

// CumulativeCollisions is the running sum of CollisionCounts.
func (m *Metrics) CumulativeCollisions() []int {
	out := make([]int, len(m.frames))
	total := 0
	for i, f := range m.frames {
		total += f.Collisions
		out[i] = total
	}
	return out
}

// TotalCollisions sums the per-frame counts over the run.
func (m *Metrics) TotalCollisions() int {
	total := 0
	for _, f := range m.frames {
		total += f.Collisions
	}
	return total
}

// averageDistance is the mean Euclidean distance from the agents to target.
func averageDistance(agents []*Agent, target geometry.Vector2D) float64 {
	if len(agents) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range agents {
		sum += a.Position.DistanceTo(target)
	}
	return sum / float64(len(agents))
}

// countCollisions counts unordered pairs i < j strictly closer than radius.
func countCollisions(agents []*Agent, radius float64) int {
	radiusSq := radius * radius
	count := 0
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			if agents[i].Position.DistanceSquaredTo(agents[j].Position) < radiusSq {
				count++
			}
		}
	}
	return count
}
