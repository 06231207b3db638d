package optimization

import (
	"errors"
	"math"
	"sort"
)

// Reference parameters for a comparison run, applied when the corresponding
// CompareOptions field is zero.
const (
	defaultBruteForceStepDeg = 1.0
	defaultToleranceDeg      = 1e-2
	defaultLearningRate      = 0.1
	defaultGradientTolerance = 1e-2
	defaultMaxIterations     = 1000
)

// CompareOptions carries the per-method parameters of a comparison run.
type CompareOptions struct {
	BruteForceStepDeg float64 `json:"brute_force_step_deg"`
	ToleranceDeg      float64 `json:"tolerance_deg"`
	LearningRate      float64 `json:"learning_rate"`
	GradientTolerance float64 `json:"gradient_tolerance"`
	MaxIterations     int     `json:"max_iterations"`
}

func (o CompareOptions) withDefaults() CompareOptions {
	if o.BruteForceStepDeg == 0 {
		o.BruteForceStepDeg = defaultBruteForceStepDeg
	}
	if o.ToleranceDeg == 0 {
		o.ToleranceDeg = defaultToleranceDeg
	}
	if o.LearningRate == 0 {
		o.LearningRate = defaultLearningRate
	}
	if o.GradientTolerance == 0 {
		o.GradientTolerance = defaultGradientTolerance
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = defaultMaxIterations
	}
	return o
}

// MethodRank is one row of the precision/cost tradeoff table.
type MethodRank struct {
	Method string `json:"method"`
	// AngleDeviationDeg is the absolute deviation from the brute-force
	// optimum, the comparison's ground truth.
	AngleDeviationDeg float64 `json:"angle_deviation_deg"`
	Evaluations       int     `json:"evaluations"`
	Converged         bool    `json:"converged"`
}

// ComparisonResult maps method name to its result. All methods in one run
// use identical bounds and the identical objective, so the results are
// directly comparable.
type ComparisonResult struct {
	Results map[string]*Result `json:"results"`
	// Ranking is ordered by angle deviation from the brute-force optimum,
	// ties broken by evaluation count.
	Ranking []MethodRank `json:"ranking"`
}

// CompareMethods runs brute force (as ground truth), ternary search, golden
// section and gradient ascent against the same objective and bounds.
// Gradient ascent starts at the midpoint of the bounds; its non-convergence
// is reported in the ranking rather than failing the whole comparison.
func CompareMethods(f Objective, b Bounds, opts CompareOptions) (*ComparisonResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	o := opts.withDefaults()

	truth, err := BruteForce{StepDeg: o.BruteForceStepDeg}.Search(f, b)
	if err != nil {
		return nil, err
	}

	cmp := &ComparisonResult{
		Results: map[string]*Result{truth.Method: truth},
		Ranking: []MethodRank{{
			Method:      truth.Method,
			Evaluations: truth.Evaluations,
			Converged:   true,
		}},
	}

	searchers := []Searcher{
		Ternary{ToleranceDeg: o.ToleranceDeg},
		GoldenSection{ToleranceDeg: o.ToleranceDeg},
		GradientAscent{
			InitialAngleDeg:   b.Mid(),
			LearningRate:      o.LearningRate,
			GradientTolerance: o.GradientTolerance,
			MaxIterations:     o.MaxIterations,
		},
	}
	for _, s := range searchers {
		res, err := s.Search(f, b)
		converged := true
		if err != nil {
			var nce *NonConvergenceError
			if !errors.As(err, &nce) || res == nil {
				return nil, err
			}
			converged = false
		}
		cmp.Results[res.Method] = res
		cmp.Ranking = append(cmp.Ranking, MethodRank{
			Method:            res.Method,
			AngleDeviationDeg: math.Abs(res.OptimalAngleDeg - truth.OptimalAngleDeg),
			Evaluations:       res.Evaluations,
			Converged:         converged,
		})
	}

	sort.Slice(cmp.Ranking, func(i, j int) bool {
		ri, rj := cmp.Ranking[i], cmp.Ranking[j]
		if ri.AngleDeviationDeg != rj.AngleDeviationDeg {
			return ri.AngleDeviationDeg < rj.AngleDeviationDeg
		}
		return ri.Evaluations < rj.Evaluations
	})

	return cmp, nil
}
