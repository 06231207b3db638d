package optimization

import (
	"math"

	"github.com/heliofit/heliofit/internal/solar"
)

// gradientProbeStepDeg is the fixed half-width of the central finite
// difference used to estimate the derivative.
const gradientProbeStepDeg = 0.01

// GradientAscent climbs a numerically estimated derivative:
// angle ← clamp(angle + learningRate·gradient). The learning rate is a
// required parameter, never auto-tuned, and the iteration cap is always
// enforced because convergence is not guaranteed. The method is sensitive to
// noise in the objective and can settle on a local optimum.
type GradientAscent struct {
	// InitialAngleDeg is the starting point, clamped into the bounds.
	InitialAngleDeg float64
	LearningRate    float64
	// GradientTolerance stops the climb when |gradient| drops below it,
	// in energy units per degree.
	GradientTolerance float64
	MaxIterations     int
}

// Name returns the method identifier.
func (GradientAscent) Name() string { return "gradient_ascent" }

// Search runs the ascent. If the iteration budget is exhausted before the
// gradient tolerance is met it returns the partial result together with a
// NonConvergenceError carrying the last angle and gradient.
func (s GradientAscent) Search(f Objective, b Bounds) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if s.LearningRate <= 0 || math.IsNaN(s.LearningRate) {
		return nil, solar.NewInvalidInput("learning_rate", s.LearningRate, "must be > 0")
	}
	if s.GradientTolerance <= 0 {
		return nil, solar.NewInvalidInput("gradient_tolerance", s.GradientTolerance, "must be > 0")
	}
	if s.MaxIterations <= 0 {
		return nil, solar.NewInvalidInput("max_iterations", float64(s.MaxIterations), "must be > 0")
	}

	rec := newRecorder(f)
	angle := b.Clamp(s.InitialAngleDeg)
	var grad float64

	for iter := 0; iter < s.MaxIterations; iter++ {
		energy, err := rec.eval(angle)
		if err != nil {
			return nil, err
		}

		// Central difference, with probes kept inside the bounds so the
		// objective never sees an out-of-domain tilt.
		hi := math.Min(angle+gradientProbeStepDeg, b.MaxDeg)
		lo := math.Max(angle-gradientProbeStepDeg, b.MinDeg)
		fHi, err := rec.eval(hi)
		if err != nil {
			return nil, err
		}
		fLo, err := rec.eval(lo)
		if err != nil {
			return nil, err
		}
		grad = (fHi - fLo) / (hi - lo)

		if math.Abs(grad) <= s.GradientTolerance {
			return rec.result(s.Name(), angle, energy), nil
		}

		angle = b.Clamp(angle + s.LearningRate*grad)
	}

	// Budget exhausted. Report the last point reached instead of
	// discarding the work.
	energy, err := rec.eval(angle)
	if err != nil {
		return nil, err
	}
	return rec.result(s.Name(), angle, energy), &NonConvergenceError{
		AngleDeg:   angle,
		Gradient:   grad,
		Iterations: s.MaxIterations,
	}
}
