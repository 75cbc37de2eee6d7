package commands

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"

	"github.com/banshee-data/hinge/internal/posture"
)

// AngleReading is a hinge angle in display units.
type AngleReading struct {
	Angle float64
	Units string
}

// jsonFloat encodes NaN and ±Inf as null, which encoding/json rejects otherwise.
func jsonFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (a AngleReading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Angle *float64 `json:"angle"`
		Units string   `json:"units"`
	}{jsonFloat(a.Angle), a.Units})
}

// MarshalJSON writes a non-finite angle (possible under the half-opened
// policy) as null.
func (r Reading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         uuid.UUID         `json:"id"`
		Angle      *float64          `json:"angle"`
		Normalized *float64          `json:"normalized"`
		Posture    posture.Category  `json:"posture"`
		Fold       posture.FoldState `json:"fold"`
	}{r.ID, jsonFloat(r.Angle), jsonFloat(r.Normalized), r.Posture, r.Fold})
}
