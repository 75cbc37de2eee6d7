// Package commands implements the hinge commands exposed to front ends:
// read_hinge_angle and read_posture_type.
//
// Failures from the angle source are returned to the caller wrapped once
// and are never retried.
package commands

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/banshee-data/hinge/internal/config"
	"github.com/banshee-data/hinge/internal/hinge"
	"github.com/banshee-data/hinge/internal/monitoring"
	"github.com/banshee-data/hinge/internal/posture"
)

// Command names accepted by Invoke.
const (
	ReadHingeAngle  = "read_hinge_angle"
	ReadPostureType = "read_posture_type"
)

var (
	// ErrUnknownCommand is returned by Invoke for names it does not serve.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNonFiniteAngle is returned when the source reports NaN or ±Inf
	// and the policy is config.PolicyReject.
	ErrNonFiniteAngle = errors.New("hinge angle is not finite")
)

var logf = monitoring.Component("commands")

// Reading is the full result of one posture read. See MarshalJSON for its
// JSON form.
type Reading struct {
	ID         uuid.UUID
	Angle      float64
	Normalized float64
	Posture    posture.Category
	Fold       posture.FoldState
}

// Commands serves the hinge commands from one angle source.
type Commands struct {
	source          hinge.AngleSource
	nonFinitePolicy string
	newID           func() uuid.UUID
}

// Option configures Commands.
type Option func(*Commands)

// WithNonFinitePolicy sets how a NaN or ±Inf angle is handled.
func WithNonFinitePolicy(policy string) Option {
	return func(c *Commands) { c.nonFinitePolicy = policy }
}

// WithIDGenerator replaces uuid.New for invocation ids.
func WithIDGenerator(f func() uuid.UUID) Option {
	return func(c *Commands) { c.newID = f }
}

// New returns Commands reading from source.
func New(source hinge.AngleSource, opts ...Option) *Commands {
	c := &Commands{
		source:          source,
		nonFinitePolicy: config.PolicyReject,
		newID:           uuid.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadHingeAngle returns the current hinge angle in degrees.
func (c *Commands) ReadHingeAngle(ctx context.Context) (float64, error) {
	id := c.newID()
	angle, err := c.readAngle(ctx, id, ReadHingeAngle)
	if err != nil {
		return 0, err
	}
	logf("%s id=%s angle=%.2f", ReadHingeAngle, id, angle)
	return angle, nil
}

// ReadPostureType classifies the current hinge angle and returns the
// posture's canonical name.
func (c *Commands) ReadPostureType(ctx context.Context) (string, error) {
	r, err := c.ReadPosture(ctx)
	if err != nil {
		return "", err
	}
	return r.Posture.String(), nil
}

// ReadPosture reads and classifies the hinge angle.
func (c *Commands) ReadPosture(ctx context.Context) (Reading, error) {
	id := c.newID()
	angle, err := c.readAngle(ctx, id, ReadPostureType)
	if err != nil {
		return Reading{}, err
	}

	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		if c.nonFinitePolicy != config.PolicyHalfOpened {
			logf("%s id=%s rejected angle=%v", ReadPostureType, id, angle)
			return Reading{}, fmt.Errorf("%s: %w: %v", ReadPostureType, ErrNonFiniteAngle, angle)
		}
	}

	category := posture.Classify(angle)
	r := Reading{
		ID:         id,
		Angle:      angle,
		Normalized: posture.Normalize(angle),
		Posture:    category,
		Fold:       posture.FoldStateOf(category),
	}
	logf("%s id=%s angle=%.2f posture=%s", ReadPostureType, id, angle, category)
	return r, nil
}

func (c *Commands) readAngle(ctx context.Context, id uuid.UUID, name string) (float64, error) {
	angle, err := c.source.ReadAngle(ctx)
	if err != nil {
		logf("%s id=%s failed: %v", name, id, err)
		return 0, fmt.Errorf("failed to read hinge angle: %w", err)
	}
	return angle, nil
}

// Names lists the command names accepted by Invoke.
func Names() []string {
	return []string{ReadHingeAngle, ReadPostureType}
}

// Invoke runs the command called name. read_hinge_angle yields a float64
// and read_posture_type a string.
func (c *Commands) Invoke(ctx context.Context, name string) (any, error) {
	switch name {
	case ReadHingeAngle:
		return c.ReadHingeAngle(ctx)
	case ReadPostureType:
		return c.ReadPostureType(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}
