package optimization

import (
	"math"

	"github.com/heliofit/heliofit/internal/solar"
)

// resphi = 2 − φ where φ = (1+√5)/2, the golden-section interior ratio.
var resphi = 2 - (1+math.Sqrt(5))/2

// GoldenSection brackets like ternary search but places its interior points
// by the golden ratio, so the point that survives an iteration is already in
// position for the next one. After the two initial probes, each iteration
// costs exactly one new evaluation instead of two; that reuse is the
// defining property of the method. Same termination rule and unimodality
// requirement as ternary search.
type GoldenSection struct {
	ToleranceDeg float64
}

// Name returns the method identifier.
func (GoldenSection) Name() string { return "golden_section" }

// Search iterates until the interval is no wider than the tolerance and
// returns the midpoint of the final interval.
func (s GoldenSection) Search(f Objective, b Bounds) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if s.ToleranceDeg <= 0 {
		return nil, solar.NewInvalidInput("tolerance_deg", s.ToleranceDeg, "must be > 0")
	}

	rec := newRecorder(f)
	a, c := b.MinDeg, b.MaxDeg

	x1 := a + resphi*(c-a)
	x2 := c - resphi*(c-a)
	f1, err := rec.eval(x1)
	if err != nil {
		return nil, err
	}
	f2, err := rec.eval(x2)
	if err != nil {
		return nil, err
	}

	for iter := 0; c-a > s.ToleranceDeg && iter < maxBracketIterations; iter++ {
		if f1 > f2 {
			// Keep [a, x2]; x1 becomes the new upper interior point.
			c = x2
			x2, f2 = x1, f1
			x1 = a + resphi*(c-a)
			if f1, err = rec.eval(x1); err != nil {
				return nil, err
			}
		} else {
			// Keep [x1, c]; x2 becomes the new lower interior point.
			a = x1
			x1, f1 = x2, f2
			x2 = c - resphi*(c-a)
			if f2, err = rec.eval(x2); err != nil {
				return nil, err
			}
		}
	}

	opt := (a + c) / 2
	energy, err := rec.eval(opt)
	if err != nil {
		return nil, err
	}
	return rec.result(s.Name(), opt, energy), nil
}
