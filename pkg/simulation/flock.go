package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

// Flock owns a fixed, index-addressed set of agents and steps them one frame
// at a time. It is not safe for concurrent use: Step, like every other
// method, belongs to the goroutine that drives the frame loop.
type Flock struct {
	cfg    Config
	world  World
	agents []*Agent

	// Per-frame buffers, reused across frames to keep Step allocation free.
	snapshot []AgentState
	desired  []geometry.Vector2D

	metrics Metrics
	logger  log.Logger
}

// Option customises a Flock at construction.
type Option func(*Flock)

// WithLogger routes the flock's diagnostics to logger.
func WithLogger(logger log.Logger) Option {
	return func(f *Flock) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFlock validates cfg and spawns cfg.FlockSize agents at random positions
// and headings inside the world. cfg.Seed makes the layout reproducible.
func NewFlock(cfg Config, opts ...Option) (*Flock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new flock: %w", err)
	}

	seed := uint64(cfg.Seed)
	if cfg.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	world := worldOf(cfg)
	limits := cfg.Limits()
	agents := make([]*Agent, cfg.FlockSize)
	for i := range agents {
		pos := world.RandomPosition(rng.Float64(), rng.Float64())
		heading := geometry.NewVectorPolar(1, rng.Float64()*2*math.Pi)
		agents[i] = NewAgent(i, pos, heading, limits)
	}

	return newFlock(cfg, agents, opts), nil
}

// NewFlockFromStates builds a flock from explicit agent states, e.g. a scripted
// scenario. cfg.FlockSize is replaced by len(states). Speeds and angular
// velocities are clamped into the configured ranges.
func NewFlockFromStates(cfg Config, states []AgentState, opts ...Option) (*Flock, error) {
	cfg.FlockSize = len(states)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new flock: %w", err)
	}

	limits := cfg.Limits()
	agents := make([]*Agent, len(states))
	for i, s := range states {
		a := NewAgent(s.ID, s.Position, s.Heading, limits)
		a.Speed = geometry.Clamp(s.Speed, limits.MinSpeed, limits.MaxSpeed)
		a.AngularVelocity = geometry.Clamp(s.AngularVelocity, limits.MinAngularVelocity, limits.MaxAngularVelocity)
		agents[i] = a
	}

	return newFlock(cfg, agents, opts), nil
}

func newFlock(cfg Config, agents []*Agent, opts []Option) *Flock {
	f := &Flock{
		cfg:      cfg,
		world:    worldOf(cfg),
		agents:   agents,
		snapshot: make([]AgentState, 0, len(agents)),
		desired:  make([]geometry.Vector2D, len(agents)),
		logger:   log.DiscardLogger,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger.Infof("flock ready: %d agents in %gx%g world (%s edges)",
		len(agents), cfg.WorldWidth, cfg.WorldHeight, cfg.Boundary)
	return f
}

func worldOf(cfg Config) World {
	return World{Width: cfg.WorldWidth, Height: cfg.WorldHeight, Boundary: cfg.Boundary}
}

// Step advances every agent by dt seconds toward target and records the
// frame's metrics. All steering is computed from the start-of-frame state
// before any agent moves.
// A non-positive or non-finite dt, or a non-finite target, skips the frame.
func (f *Flock) Step(target geometry.Vector2D, dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) || !target.IsFinite() {
		f.logger.Debugf("skipping frame: dt=%v target=%v", dt, target)
		return
	}

	// 1. Freeze the start-of-frame state.
	// Reset to length 0 but keep capacity, the backing array is reused every frame.
	f.snapshot = f.snapshot[:0]
	for _, a := range f.agents {
		f.snapshot = append(f.snapshot, a.State())
	}

	// 2. Sense and steer against the snapshot only
	for i := range f.agents {
		f.desired[i] = ComputeSteering(i, f.snapshot, target, &f.cfg).Desired(&f.cfg)
	}

	// 3. Commit
	for i, a := range f.agents {
		a.Integrate(f.desired[i], dt)
		f.world.Contain(a)
	}

	// 4. Metrics
	fm := FrameMetrics{
		Frame:           f.metrics.Len(),
		Target:          target,
		AverageDistance: averageDistance(f.agents, target),
		Collisions:      countCollisions(f.agents, f.cfg.CollisionRadius),
	}
	f.metrics.record(fm)
	f.logger.Debugf("frame %d: avg distance %.2f, collisions %d", fm.Frame, fm.AverageDistance, fm.Collisions)
}

// Agents returns a copy of every agent's state in flock order.
func (f *Flock) Agents() []AgentState {
	out := make([]AgentState, len(f.agents))
	for i, a := range f.agents {
		out[i] = a.State()
	}
	return out
}

// Agent returns a copy of the i-th agent's state.
func (f *Flock) Agent(i int) AgentState {
	return f.agents[i].State()
}

// Len is the number of agents.
func (f *Flock) Len() int { return len(f.agents) }

// Frame is the number of frames simulated so far.
func (f *Flock) Frame() int { return f.metrics.Len() }

// Config returns the configuration the flock was built with.
func (f *Flock) Config() Config { return f.cfg }

// Metrics gives read access to the per-frame log.
func (f *Flock) Metrics() *Metrics { return &f.metrics }
