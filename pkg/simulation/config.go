package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed boids.schema.json
var configSchema string

// Boundary modes for the world edges.
const (
	BoundaryWrap   = "wrap"
	BoundaryBounce = "bounce"
	BoundaryNone   = "none"
)

// ErrInvalidConfig is matched by every ConfigError.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError reports one configuration field that cannot be used to build a Flock.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Config is fixed for a whole run. Speeds are world units per second,
// angular velocities radians per second. MaxAcceleration and
// MaxAngularAcceleration cap the change of speed and angular velocity per frame.
type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" toml:"worldHeight"`
	Boundary    string  `json:"boundary" toml:"boundary"` // wrap, bounce or none

	// Population
	FlockSize int   `json:"flockSize" toml:"flockSize"`
	Seed      int64 `json:"seed" toml:"seed"` // 0 picks a time based seed

	// Kinematics
	MinSpeed               float64 `json:"minSpeed" toml:"minSpeed"`
	MaxSpeed               float64 `json:"maxSpeed" toml:"maxSpeed"`
	MaxAcceleration        float64 `json:"maxAcceleration" toml:"maxAcceleration"`
	MinAngularVelocity     float64 `json:"minAngularVelocity" toml:"minAngularVelocity"`
	MaxAngularVelocity     float64 `json:"maxAngularVelocity" toml:"maxAngularVelocity"`
	MaxAngularAcceleration float64 `json:"maxAngularAcceleration" toml:"maxAngularAcceleration"`

	// Interaction Radii
	PerceptionRadius float64 `json:"perceptionRadius" toml:"perceptionRadius"` // neighbours
	SeparationRadius float64 `json:"separationRadius" toml:"separationRadius"` // personal space
	CollisionRadius  float64 `json:"collisionRadius" toml:"collisionRadius"`   // metrics only

	// Rule weights
	AlignmentWeight  float64 `json:"alignmentWeight" toml:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight" toml:"cohesionWeight"`
	SeparationWeight float64 `json:"separationWeight" toml:"separationWeight"`
	TargetWeight     float64 `json:"targetWeight" toml:"targetWeight"`
}

// DefaultConfig mirrors the flock the viewer starts with.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:             1400,
		WorldHeight:            800,
		Boundary:               BoundaryWrap,
		FlockSize:              100,
		MinSpeed:               60,
		MaxSpeed:               180,
		MaxAcceleration:        6,
		MinAngularVelocity:     -3,
		MaxAngularVelocity:     3,
		MaxAngularAcceleration: 0.3,
		PerceptionRadius:       60,
		SeparationRadius:       25,
		CollisionRadius:        5,
		AlignmentWeight:        1.0,
		CohesionWeight:         0.6,
		SeparationWeight:       1.5,
		TargetWeight:           0.8,
	}
}

// Limits returns the kinematic bounds handed to every Agent.
func (c Config) Limits() Limits {
	return Limits{
		MinSpeed:               c.MinSpeed,
		MaxSpeed:               c.MaxSpeed,
		MaxAcceleration:        c.MaxAcceleration,
		MinAngularVelocity:     c.MinAngularVelocity,
		MaxAngularVelocity:     c.MaxAngularVelocity,
		MaxAngularAcceleration: c.MaxAngularAcceleration,
	}
}

// Validate returns every problem found in the configuration at once.
// Each one is a *ConfigError.
func (c Config) Validate() error {
	var result *multierror.Error
	fail := func(field, reason string) {
		result = multierror.Append(result, &ConfigError{Field: field, Reason: reason})
	}

	numbers := []struct {
		field string
		value float64
	}{
		{"worldWidth", c.WorldWidth},
		{"worldHeight", c.WorldHeight},
		{"minSpeed", c.MinSpeed},
		{"maxSpeed", c.MaxSpeed},
		{"maxAcceleration", c.MaxAcceleration},
		{"minAngularVelocity", c.MinAngularVelocity},
		{"maxAngularVelocity", c.MaxAngularVelocity},
		{"maxAngularAcceleration", c.MaxAngularAcceleration},
		{"perceptionRadius", c.PerceptionRadius},
		{"separationRadius", c.SeparationRadius},
		{"collisionRadius", c.CollisionRadius},
		{"alignmentWeight", c.AlignmentWeight},
		{"cohesionWeight", c.CohesionWeight},
		{"separationWeight", c.SeparationWeight},
		{"targetWeight", c.TargetWeight},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			fail(n.field, "must be a finite number")
		}
	}

	if c.WorldWidth <= 0 {
		fail("worldWidth", "must be positive")
	}
	if c.WorldHeight <= 0 {
		fail("worldHeight", "must be positive")
	}
	switch c.Boundary {
	case BoundaryWrap, BoundaryBounce, BoundaryNone:
	default:
		fail("boundary", fmt.Sprintf("must be one of %s, %s, %s (got %q)", BoundaryWrap, BoundaryBounce, BoundaryNone, c.Boundary))
	}
	if c.FlockSize <= 0 {
		fail("flockSize", "must be positive")
	}

	if c.MinSpeed < 0 {
		fail("minSpeed", "must not be negative")
	}
	if c.MinSpeed > c.MaxSpeed {
		fail("minSpeed", fmt.Sprintf("(%g) must not exceed maxSpeed (%g)", c.MinSpeed, c.MaxSpeed))
	}
	if c.MinAngularVelocity > c.MaxAngularVelocity {
		fail("minAngularVelocity", fmt.Sprintf("(%g) must not exceed maxAngularVelocity (%g)", c.MinAngularVelocity, c.MaxAngularVelocity))
	}
	if c.MaxAcceleration < 0 {
		fail("maxAcceleration", "must not be negative")
	}
	if c.MaxAngularAcceleration < 0 {
		fail("maxAngularAcceleration", "must not be negative")
	}

	for _, n := range numbers[8:] {
		if n.value < 0 {
			fail(n.field, "must not be negative")
		}
	}

	return result.ErrorOrNil()
}

// LoadConfig reads a configuration file over DefaultConfig and validates it.
// JSON files are checked against the embedded schema first, TOML files are
// decoded directly.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".toml":
		cfg, err = decodeTOML(b)
	case ".json", "":
		cfg, err = decodeJSON(b)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(configFile))
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeJSON(b []byte) (*Config, error) {
	sch, err := jsonschema.CompileString("boids.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func decodeTOML(b []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}
	return cfg, nil
}
