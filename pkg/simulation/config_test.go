package simulation

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"min speed above max speed", func(c *Config) { c.MinSpeed, c.MaxSpeed = 5, 1 }, "minSpeed"},
		{"negative min speed", func(c *Config) { c.MinSpeed = -1 }, "minSpeed"},
		{"min angular velocity above max", func(c *Config) { c.MinAngularVelocity, c.MaxAngularVelocity = 1, -1 }, "minAngularVelocity"},
		{"negative acceleration", func(c *Config) { c.MaxAcceleration = -0.1 }, "maxAcceleration"},
		{"negative angular acceleration", func(c *Config) { c.MaxAngularAcceleration = -0.1 }, "maxAngularAcceleration"},
		{"negative perception radius", func(c *Config) { c.PerceptionRadius = -1 }, "perceptionRadius"},
		{"negative separation radius", func(c *Config) { c.SeparationRadius = -1 }, "separationRadius"},
		{"negative collision radius", func(c *Config) { c.CollisionRadius = -1 }, "collisionRadius"},
		{"negative alignment weight", func(c *Config) { c.AlignmentWeight = -1 }, "alignmentWeight"},
		{"negative cohesion weight", func(c *Config) { c.CohesionWeight = -1 }, "cohesionWeight"},
		{"negative separation weight", func(c *Config) { c.SeparationWeight = -1 }, "separationWeight"},
		{"negative target weight", func(c *Config) { c.TargetWeight = -1 }, "targetWeight"},
		{"zero flock", func(c *Config) { c.FlockSize = 0 }, "flockSize"},
		{"negative flock", func(c *Config) { c.FlockSize = -3 }, "flockSize"},
		{"empty world", func(c *Config) { c.WorldWidth = 0 }, "worldWidth"},
		{"unknown boundary", func(c *Config) { c.Boundary = "torus" }, "boundary"},
		{"NaN weight", func(c *Config) { c.TargetWeight = math.NaN() }, "targetWeight"},
		{"infinite speed", func(c *Config) { c.MaxSpeed = math.Inf(1) }, "maxSpeed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "error should match ErrInvalidConfig: %v", err)

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfig_ValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSpeed, cfg.MaxSpeed = 5, 1
	cfg.FlockSize = 0
	cfg.CollisionRadius = -2

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"minSpeed", "flockSize", "collisionRadius"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestNewFlock_RejectsInvertedSpeedRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSpeed, cfg.MaxSpeed = 5, 1

	f, err := NewFlock(*cfg)
	require.Error(t, err)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "boids.json", `{"flockSize": 12, "maxSpeed": 90, "boundary": "bounce"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.FlockSize)
	assert.Equal(t, 90.0, cfg.MaxSpeed)
	assert.Equal(t, BoundaryBounce, cfg.Boundary)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultConfig().PerceptionRadius, cfg.PerceptionRadius)
}

func TestLoadConfig_JSONRejectedBySchema(t *testing.T) {
	tests := map[string]string{
		"unknown key":       `{"flockSize": 12, "leaderCount": 2}`,
		"wrong type":        `{"flockSize": "many"}`,
		"negative radius":   `{"collisionRadius": -1}`,
		"unknown boundary":  `{"boundary": "torus"}`,
		"fractional agents": `{"flockSize": 2.5}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "boids.json", body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestLoadConfig_JSONRejectedByValidate(t *testing.T) {
	// the schema cannot compare two fields, Validate can
	_, err := LoadConfig(writeFile(t, "boids.json", `{"minSpeed": 5, "maxSpeed": 1}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeFile(t, "boids.toml", `
flockSize = 40
seed = 7
targetWeight = 1.25
boundary = "none"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.FlockSize)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 1.25, cfg.TargetWeight)
	assert.Equal(t, BoundaryNone, cfg.Boundary)
}

func TestLoadConfig_TOMLUnknownKey(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "boids.toml", "flockSize = 3\nleaders = 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leaders")
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "boids.yaml", "flockSize: 3"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}
