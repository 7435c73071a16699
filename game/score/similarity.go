package score

import (
	"errors"
	"math"
)

// ErrDimensionMismatch means two vectors did not come from the same embedding
// backend. It signals a programming error, not a game condition.
var ErrDimensionMismatch = errors.New("vectors have different dimensions")

// Cosine returns the cosine similarity of a and b in [-1, 1].
// A zero vector has a similarity of 0 with everything.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, sim)), nil
}

// Segment linearly maps similarities in [From, To) to scores in [Low, High].
type Segment struct {
	From, To  float64
	Low, High float64
}

// Calibration is an ordered, contiguous list of segments.
type Calibration []Segment

// DefaultCalibration stretches the range sentence embeddings actually produce
// for single words (roughly 0.30 to 0.95) over the whole score scale.
var DefaultCalibration = Calibration{
	{From: 0.00, To: 0.30, Low: 0, High: 50},
	{From: 0.30, To: 0.50, Low: 50, High: 250},
	{From: 0.50, To: 0.65, Low: 250, High: 450},
	{From: 0.65, To: 0.75, Low: 450, High: 600},
	{From: 0.75, To: 0.85, Low: 600, High: 800},
	{From: 0.85, To: 0.95, Low: 800, High: 950},
	{From: 0.95, To: 1.00, Low: 950, High: 999},
}

// Calibrate maps a cosine similarity to a score in [0, 999] using DefaultCalibration.
func Calibrate(sim float64) int {
	return DefaultCalibration.Apply(sim)
}

// Apply maps sim through the segments. Values below the first segment (and
// NaN) score the first Low, values above the last segment score the last High.
// The result is rounded and never leaves [0, Max].
func (c Calibration) Apply(sim float64) int {
	if len(c) == 0 {
		return 0
	}
	first, last := c[0], c[len(c)-1]
	switch {
	case math.IsNaN(sim) || sim <= first.From:
		return bound(first.Low)
	case sim >= last.To:
		return bound(last.High)
	}
	for _, s := range c {
		if sim < s.To {
			return bound(s.Low + (sim-s.From)/(s.To-s.From)*(s.High-s.Low))
		}
	}
	return bound(last.High)
}

func bound(v float64) int {
	return clamp(int(math.Round(v)), 0, Max)
}
