// Package optimization locates the panel tilt angle that maximizes captured
// energy. Four structurally different search strategies share one Searcher
// contract; every objective evaluation any of them performs is recorded, in
// call order, in the returned history so convergence can be audited and
// plotted.
package optimization

// Tilt domain boundaries in degrees. Every search interval must lie inside
// [DomainMinDeg, DomainMaxDeg].
const (
	DomainMinDeg = 0.0
	DomainMaxDeg = 90.0
)

// Objective is the scalar function the searchers maximize: captured energy
// as a function of panel tilt in degrees.
type Objective func(angleDeg float64) (float64, error)

// Bounds is the closed search interval in degrees.
type Bounds struct {
	MinDeg float64 `json:"min_deg"`
	MaxDeg float64 `json:"max_deg"`
}

// Validate checks DomainMinDeg <= Min < Max <= DomainMaxDeg. Every searcher
// calls it before any objective evaluation occurs.
func (b Bounds) Validate() error {
	if b.MinDeg < DomainMinDeg || b.MaxDeg > DomainMaxDeg || b.MinDeg >= b.MaxDeg {
		return &InvalidRangeError{MinDeg: b.MinDeg, MaxDeg: b.MaxDeg}
	}
	return nil
}

// Clamp restricts an angle to the interval.
func (b Bounds) Clamp(angleDeg float64) float64 {
	if angleDeg < b.MinDeg {
		return b.MinDeg
	}
	if angleDeg > b.MaxDeg {
		return b.MaxDeg
	}
	return angleDeg
}

// Mid returns the midpoint of the interval.
func (b Bounds) Mid() float64 {
	return (b.MinDeg + b.MaxDeg) / 2
}

// EvaluationRecord is one (angle, energy) pair queried from the objective.
type EvaluationRecord struct {
	AngleDeg float64 `json:"angle_deg"`
	Energy   float64 `json:"energy"`
}

// Result is the outcome of a single search. It is immutable after return;
// the package holds no reference to it.
type Result struct {
	Method          string             `json:"method"`
	OptimalAngleDeg float64            `json:"optimal_angle_deg"`
	OptimalEnergy   float64            `json:"optimal_energy"`
	Evaluations     int                `json:"evaluations"`
	History         []EvaluationRecord `json:"history"`
}

// Searcher is the common contract of the search strategies. Search returns
// the maximizing angle over the bounds together with the complete evaluation
// history, in evaluation order, never deduplicated or reordered.
type Searcher interface {
	Search(f Objective, b Bounds) (*Result, error)
	Name() string
}

// recorder wraps an objective so that every evaluation, including gradient
// finite-difference probes, lands in the history exactly once.
type recorder struct {
	f       Objective
	history []EvaluationRecord
}

func newRecorder(f Objective) *recorder {
	return &recorder{f: f}
}

func (r *recorder) eval(angleDeg float64) (float64, error) {
	v, err := r.f(angleDeg)
	if err != nil {
		return 0, err
	}
	r.history = append(r.history, EvaluationRecord{AngleDeg: angleDeg, Energy: v})
	return v, nil
}

func (r *recorder) result(method string, angleDeg, energy float64) *Result {
	return &Result{
		Method:          method,
		OptimalAngleDeg: angleDeg,
		OptimalEnergy:   energy,
		Evaluations:     len(r.history),
		History:         r.history,
	}
}
