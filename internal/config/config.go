package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/hinge/internal/hinge"
	"github.com/banshee-data/hinge/internal/units"
)

// DefaultConfigPath is the path to the canonical defaults file.
const DefaultConfigPath = "config/hinge.defaults.json"

// Policies for an angle source that reports NaN or ±Inf.
const (
	// PolicyReject fails the command with commands.ErrNonFiniteAngle.
	PolicyReject = "reject"
	// PolicyHalfOpened classifies the value anyway, which yields half-opened.
	PolicyHalfOpened = "half-opened"
)

// Config is the hinge tool configuration. Every field is optional; the
// Get* methods supply defaults for fields left out of the file.
type Config struct {
	// Angle reported by the stub sensor
	FixedAngle *float64 `json:"fixed_angle,omitempty"`
	// "reject" or "half-opened"
	NonFinitePolicy *string `json:"non_finite_policy,omitempty"`
	// Replay angles from this file instead of the stub sensor
	FixturesPath *string `json:"fixtures_path,omitempty"`
	// Display units for read_hinge_angle: "deg" or "rad"
	Units *string `json:"units,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// EmptyConfig returns a Config with all fields unset.
func EmptyConfig() *Config {
	return &Config{}
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		FixedAngle:      ptrFloat64(hinge.DefaultAngle),
		NonFinitePolicy: ptrString(PolicyReject),
		FixturesPath:    ptrString(""),
		Units:           ptrString(units.Degrees),
	}
}

// LoadConfig loads a Config from a JSON file. The path must end in .json
// and the file must be under 1MB. Fields omitted from the file keep their
// defaults. A relative fixtures_path is resolved against the directory
// holding the config file.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// A relative fixtures_path is relative to the config file.
	if p := cfg.GetFixturesPath(); p != "" && !filepath.IsAbs(p) {
		resolved := filepath.Join(filepath.Dir(cleanPath), p)
		cfg.FixturesPath = &resolved
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.FixedAngle != nil {
		if math.IsNaN(*c.FixedAngle) || math.IsInf(*c.FixedAngle, 0) {
			return fmt.Errorf("fixed_angle must be finite, got %v", *c.FixedAngle)
		}
	}

	if c.NonFinitePolicy != nil {
		switch *c.NonFinitePolicy {
		case "", PolicyReject, PolicyHalfOpened:
		default:
			return fmt.Errorf("non_finite_policy must be %q or %q, got %q", PolicyReject, PolicyHalfOpened, *c.NonFinitePolicy)
		}
	}

	if c.Units != nil && *c.Units != "" && !units.IsValid(*c.Units) {
		return fmt.Errorf("units must be one of %s, got %q", units.GetValidUnitsString(), *c.Units)
	}

	return nil
}

// GetFixedAngle returns the fixed_angle value or the stub default.
func (c *Config) GetFixedAngle() float64 {
	if c.FixedAngle == nil {
		return hinge.DefaultAngle
	}
	return *c.FixedAngle
}

// GetNonFinitePolicy returns the non_finite_policy value or "reject".
func (c *Config) GetNonFinitePolicy() string {
	if c.NonFinitePolicy == nil || *c.NonFinitePolicy == "" {
		return PolicyReject
	}
	return *c.NonFinitePolicy
}

// GetFixturesPath returns the fixtures_path value, empty when unset.
func (c *Config) GetFixturesPath() string {
	if c.FixturesPath == nil {
		return ""
	}
	return *c.FixturesPath
}

// GetUnits returns the units value or degrees.
func (c *Config) GetUnits() string {
	if c.Units == nil || *c.Units == "" {
		return units.Degrees
	}
	return *c.Units
}

// NewAngleSource builds the angle source the configuration describes: a
// replay of the fixtures file when one is set, the stub sensor otherwise.
func (c *Config) NewAngleSource() (hinge.AngleSource, error) {
	if path := c.GetFixturesPath(); path != "" {
		return hinge.LoadFixtures(path)
	}
	return hinge.NewFixedSource(c.GetFixedAngle()), nil
}
