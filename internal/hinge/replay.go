package hinge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ReplaySource reports a recorded list of angles in order, starting over
// after the last one.
type ReplaySource struct {
	mu     sync.Mutex
	angles []float64
	next   int
}

// NewReplaySource returns a ReplaySource over a copy of angles.
func NewReplaySource(angles []float64) *ReplaySource {
	return &ReplaySource{angles: append([]float64(nil), angles...)}
}

// LoadFixtures reads a fixtures file with one angle per line. Blank lines and
// lines starting with '#' are skipped.
func LoadFixtures(path string) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures file: %w", err)
	}
	defer f.Close()

	angles, err := ParseFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return NewReplaySource(angles), nil
}

// ParseFixtures parses the fixtures format read by LoadFixtures.
func ParseFixtures(r io.Reader) ([]float64, error) {
	var angles []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		angle, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid angle %q: %w", line, text, err)
		}
		angles = append(angles, angle)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return angles, nil
}

func (s *ReplaySource) ReadAngle(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, contextError("replay", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.angles) == 0 {
		return 0, &SensorError{Kind: SensorUnavailable, Source: "replay", Err: errors.New("no recorded angles")}
	}
	angle := s.angles[s.next]
	s.next = (s.next + 1) % len(s.angles)
	return angle, nil
}

// Len returns the number of recorded angles.
func (s *ReplaySource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.angles)
}
