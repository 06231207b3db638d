package optimization

import "fmt"

// InvalidRangeError reports malformed search bounds. It is raised before any
// objective evaluation occurs.
type InvalidRangeError struct {
	MinDeg float64
	MaxDeg float64
}

// Error implements the error interface.
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid search range [%v, %v]: need %v <= min < max <= %v",
		e.MinDeg, e.MaxDeg, DomainMinDeg, DomainMaxDeg)
}

// NonConvergenceError reports that gradient ascent exhausted its iteration
// budget before meeting the gradient tolerance. The search still returns its
// partial result alongside this error; callers decide whether to use it.
type NonConvergenceError struct {
	// AngleDeg is the last angle reached.
	AngleDeg float64
	// Gradient is the last estimated gradient, in energy units per degree.
	Gradient float64
	// Iterations is the exhausted budget.
	Iterations int
}

// Error implements the error interface.
func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("gradient ascent did not converge after %d iterations (angle=%.4f°, gradient=%.6g)",
		e.Iterations, e.AngleDeg, e.Gradient)
}
