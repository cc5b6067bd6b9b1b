package simulation

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
)

// TargetSource supplies the point the flock steers toward, once per frame.
type TargetSource interface {
	Target(dt float64) geometry.Vector2D
}

// FixedTarget never moves.
type FixedTarget geometry.Vector2D

func (t FixedTarget) Target(float64) geometry.Vector2D { return geometry.Vector2D(t) }

// LeaderTarget runs a second, target-less flock and follows its first agent.
// The main flock then chases a point that wanders with a flock of its own.
type LeaderTarget struct {
	decoys *Flock
}

// LeaderConfig derives the decoy flock configuration from the main one:
// fewer agents that see further and ignore any target.
func LeaderConfig(cfg Config) Config {
	cfg.FlockSize = 30
	cfg.PerceptionRadius = 200
	cfg.TargetWeight = 0
	if cfg.Seed != 0 {
		cfg.Seed++
	}
	return cfg
}

// NewLeaderTarget builds the decoy flock. TargetWeight is forced to zero.
func NewLeaderTarget(cfg Config, opts ...Option) (*LeaderTarget, error) {
	cfg.TargetWeight = 0
	decoys, err := NewFlock(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("leader target: %w", err)
	}
	return &LeaderTarget{decoys: decoys}, nil
}

// Target steps the decoys and returns the leader's new position.
func (l *LeaderTarget) Target(dt float64) geometry.Vector2D {
	l.decoys.Step(l.Leader(), dt)
	return l.Leader()
}

// Leader is the current position of the followed agent.
func (l *LeaderTarget) Leader() geometry.Vector2D {
	return l.decoys.Agent(0).Position
}

// Flock exposes the decoys for drawing.
func (l *LeaderTarget) Flock() *Flock { return l.decoys }
