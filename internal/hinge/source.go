// Package hinge provides sources for the hinge angle of a foldable device.
//
// No hardware sensor is read here. FixedSource stands in for the sensor and
// ReplaySource feeds recorded angles in dev mode.
package hinge

import (
	"context"
	"errors"
	"fmt"
)

// DefaultAngle is the angle reported by the stub sensor, in degrees.
const DefaultAngle = 42.0

// AngleSource returns the current hinge angle in degrees.
type AngleSource interface {
	ReadAngle(ctx context.Context) (float64, error)
}

// SourceFunc adapts a plain function to AngleSource.
type SourceFunc func(ctx context.Context) (float64, error)

func (f SourceFunc) ReadAngle(ctx context.Context) (float64, error) {
	return f(ctx)
}

// FixedSource always reports the same angle.
type FixedSource struct {
	Angle float64
}

// NewFixedSource returns a FixedSource reporting angle.
func NewFixedSource(angle float64) *FixedSource {
	return &FixedSource{Angle: angle}
}

func (s *FixedSource) ReadAngle(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, contextError("fixed", err)
	}
	return s.Angle, nil
}

// ErrorKind classifies why an angle could not be read.
type ErrorKind int

const (
	SensorUnavailable ErrorKind = iota
	SensorTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case SensorUnavailable:
		return "unavailable"
	case SensorTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinel errors matched by errors.Is against a *SensorError of the same kind.
var (
	ErrSensorUnavailable = errors.New("angle source unavailable")
	ErrSensorTimeout     = errors.New("angle source timed out")
)

// SensorError reports a failed angle read.
type SensorError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

func (e *SensorError) Error() string {
	msg := e.sentinel().Error()
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SensorError) Unwrap() error { return e.Err }

func (e *SensorError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *SensorError) sentinel() error {
	if e.Kind == SensorTimeout {
		return ErrSensorTimeout
	}
	return ErrSensorUnavailable
}

// contextError maps a finished context onto the sensor error taxonomy.
func contextError(source string, err error) error {
	kind := SensorUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = SensorTimeout
	}
	return &SensorError{Kind: kind, Source: source, Err: err}
}
