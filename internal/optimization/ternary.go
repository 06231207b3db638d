package optimization

import "github.com/heliofit/heliofit/internal/solar"

// maxBracketIterations is a hard cap on bracketing iterations, a guard
// against tolerances that float arithmetic cannot reach.
const maxBracketIterations = 100

// Ternary narrows the interval by comparing the objective at the two points
// a third of the way in from each end, discarding the side whose probe is
// smaller. It requires a unimodal objective on the interval: on a multimodal
// one it converges to a local maximum. That is a documented limitation of
// the method, not a defect to work around.
type Ternary struct {
	ToleranceDeg float64
}

// Name returns the method identifier.
func (Ternary) Name() string { return "ternary_search" }

// Search iterates until the interval is no wider than the tolerance and
// returns the midpoint of the final interval.
func (s Ternary) Search(f Objective, b Bounds) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if s.ToleranceDeg <= 0 {
		return nil, solar.NewInvalidInput("tolerance_deg", s.ToleranceDeg, "must be > 0")
	}

	rec := newRecorder(f)
	a, c := b.MinDeg, b.MaxDeg

	for iter := 0; c-a > s.ToleranceDeg && iter < maxBracketIterations; iter++ {
		m1 := a + (c-a)/3
		m2 := c - (c-a)/3

		f1, err := rec.eval(m1)
		if err != nil {
			return nil, err
		}
		f2, err := rec.eval(m2)
		if err != nil {
			return nil, err
		}

		if f1 < f2 {
			a = m1
		} else {
			c = m2
		}
	}

	opt := (a + c) / 2
	energy, err := rec.eval(opt)
	if err != nil {
		return nil, err
	}
	return rec.result(s.Name(), opt, energy), nil
}
