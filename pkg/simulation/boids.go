package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
)

// separationCap bounds the repulsion of a single neighbour, in multiples of a
// unit push. It keeps the force finite when two agents nearly overlap.
const separationCap = 100.0

// Steering holds the four unweighted contributions for one agent.
// Each one is a unit vector, except Separation which grows as neighbours get
// closer, or zero when the rule does not apply.
type Steering struct {
	Alignment  geometry.Vector2D
	Cohesion   geometry.Vector2D
	Separation geometry.Vector2D
	Target     geometry.Vector2D
	Neighbours int
}

// Desired combines the contributions with the configured weights.
func (s Steering) Desired(cfg *Config) geometry.Vector2D {
	return s.Alignment.Mul(cfg.AlignmentWeight).
		Add(s.Cohesion.Mul(cfg.CohesionWeight)).
		Add(s.Separation.Mul(cfg.SeparationWeight)).
		Add(s.Target.Mul(cfg.TargetWeight))
}

// ComputeSteering evaluates the boids rules for snapshot[me] against every
// other entry of the snapshot, plus the pull toward target.
// It only reads the snapshot, so the result does not depend on the order in
// which agents are evaluated.
func ComputeSteering(me int, snapshot []AgentState, target geometry.Vector2D, cfg *Config) Steering {
	self := snapshot[me]
	perceptionSq := cfg.PerceptionRadius * cfg.PerceptionRadius

	var (
		headingSum geometry.Vector2D
		centerSum  geometry.Vector2D
		separation geometry.Vector2D
		neighbours int
	)

	for j := range snapshot {
		if j == me {
			continue
		}
		other := snapshot[j]
		offset := self.Position.Sub(other.Position) // points away from other
		distSq := offset.LenSqr()
		if distSq > perceptionSq {
			continue
		}

		neighbours++
		headingSum = headingSum.Add(other.Heading)
		centerSum = centerSum.Add(other.Position)

		dist := math.Sqrt(distSq)
		if dist < cfg.SeparationRadius {
			separation = separation.Add(repulsion(self, other, offset, dist, cfg.SeparationRadius))
		}
	}

	s := Steering{
		Separation: separation,
		Target:     target.Sub(self.Position).Normalize(),
		Neighbours: neighbours,
	}
	if neighbours > 0 {
		n := float64(neighbours)
		s.Alignment = headingSum.Mul(1 / n).Normalize()
		s.Cohesion = centerSum.Mul(1 / n).Sub(self.Position).Normalize()
	}
	return s
}

// repulsion pushes self away from other with a strength inversely
// proportional to their distance, capped at separationCap.
func repulsion(self, other AgentState, offset geometry.Vector2D, dist, radius float64) geometry.Vector2D {
	away := offset.Normalize()
	if away.IsZero() {
		away = coincidentDirection(self.ID, other.ID)
	}
	strength := separationCap
	if dist > 0 {
		strength = math.Min(radius/dist, separationCap)
	}
	return away.Mul(strength)
}

// coincidentDirection picks an escape direction for two agents sharing a
// position. Both sides derive the same axis from their IDs and take opposite
// ends of it, so they split apart whatever the evaluation order.
func coincidentDirection(self, other int) geometry.Vector2D {
	axis := geometry.NewVectorPolar(1, float64(self+other))
	if self < other {
		return axis.Mul(-1)
	}
	return axis
}
