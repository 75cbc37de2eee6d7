package posture

import "strings"

// FoldState says whether the device should be laid out as two halves.
type FoldState string

const (
	FoldStateFolded   FoldState = "folded"
	FoldStateUnfolded FoldState = "unfolded"
)

// ResolveFoldState decides the fold state from a posture string as reported
// by a posture provider (which may use names outside Category, e.g. "flat"
// or "unknown"). Unrecognised names fall back to the number of display
// segments: two or more means folded.
func ResolveFoldState(postureType string, segmentCount int) FoldState {
	switch strings.ToLower(postureType) {
	case "continuous", "flat", "unknown":
		return FoldStateUnfolded
	case Folded.String(), HalfOpened.String(), Flipped.String():
		return FoldStateFolded
	}
	if segmentCount >= 2 {
		return FoldStateFolded
	}
	return FoldStateUnfolded
}

// FoldStateOf is ResolveFoldState for a classified category.
func FoldStateOf(c Category) FoldState {
	return ResolveFoldState(c.String(), 0)
}
