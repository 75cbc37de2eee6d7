// Package posture classifies a foldable device's hinge angle into a named
// posture category.
package posture

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Category is the usage configuration of a foldable device derived from
// its hinge angle.
type Category int

const (
	Continuous Category = iota
	Folded
	HalfOpened
	Flipped
)

// Range limits in degrees, applied to the normalized angle.
const (
	ContinuousMin = 170.0
	ContinuousMax = 190.0
	FlippedMax    = 350.0
	FoldedMax     = 30.0
)

// ErrUnknownCategory is returned when text does not name a category.
var ErrUnknownCategory = errors.New("unknown posture category")

// Categories lists every category in declaration order.
var Categories = []Category{Continuous, Folded, HalfOpened, Flipped}

// String returns the canonical rendering used on the command boundary.
func (c Category) String() string {
	switch c {
	case Continuous:
		return "continuous"
	case Folded:
		return "folded"
	case HalfOpened:
		return "half-opened"
	case Flipped:
		return "flipped"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory returns the category whose canonical rendering is s.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if s == c.String() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	switch c {
	case Continuous, Folded, HalfOpened, Flipped:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Normalize maps an angle in degrees onto [0, 360). math.Mod keeps the sign
// of the dividend, so the second Mod is what makes negative input
// non-negative.
func Normalize(angleDeg float64) float64 {
	return math.Mod(math.Mod(angleDeg, 360)+360, 360)
}

// Classify returns the posture for an angle in degrees. The ranges overlap
// at 190 and are checked in order, so 190 is Continuous.
//
// NaN and ±Inf normalize to NaN, fail every range check and come back as
// HalfOpened. Callers that must not report a posture for such input should
// check math.IsNaN/math.IsInf first.
func Classify(angleDeg float64) Category {
	n := Normalize(angleDeg)
	switch {
	case n >= ContinuousMin && n <= ContinuousMax:
		return Continuous
	case n >= ContinuousMax && n < FlippedMax:
		return Flipped
	case n <= FoldedMax || n >= FlippedMax:
		return Folded
	default:
		return HalfOpened
	}
}
