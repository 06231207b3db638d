package optimization

import (
	"math"

	"github.com/heliofit/heliofit/internal/solar"
)

// BruteForce evaluates the objective at every grid point min, min+step,
// min+2·step, … up to and including max, and returns the best sample. It is
// the only strategy that guarantees the optimum over its grid, at a cost of
// (max−min)/step evaluations. The step is required; there is no
// tolerance-based stopping.
type BruteForce struct {
	StepDeg float64
}

// Name returns the method identifier.
func (BruteForce) Name() string { return "brute_force" }

// Search sweeps the grid. If stepping does not land exactly on max, max is
// evaluated as a final explicit point so the boundary is never skipped.
func (s BruteForce) Search(f Objective, b Bounds) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if s.StepDeg <= 0 || math.IsNaN(s.StepDeg) {
		return nil, solar.NewInvalidInput("step_deg", s.StepDeg, "must be > 0")
	}

	rec := newRecorder(f)
	bestAngle := b.MinDeg
	bestEnergy := math.Inf(-1)

	// Absorbs float accumulation so a grid that lands on max within
	// rounding error still includes it.
	const eps = 1e-9

	last := math.Inf(-1)
	for x := b.MinDeg; x <= b.MaxDeg+eps; x += s.StepDeg {
		angle := x
		if angle > b.MaxDeg {
			angle = b.MaxDeg
		}
		v, err := rec.eval(angle)
		if err != nil {
			return nil, err
		}
		if v > bestEnergy {
			bestAngle, bestEnergy = angle, v
		}
		last = angle
	}
	if b.MaxDeg-last > eps {
		v, err := rec.eval(b.MaxDeg)
		if err != nil {
			return nil, err
		}
		if v > bestEnergy {
			bestAngle, bestEnergy = b.MaxDeg, v
		}
	}

	return rec.result(s.Name(), bestAngle, bestEnergy), nil
}
