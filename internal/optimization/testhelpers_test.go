package optimization

// concaveObjective is the synthetic test objective f(x) = -(x-30)² + 1000,
// unimodal on [0, 90] with its maximum at exactly 30. When calls is non-nil
// every queried angle is appended to it, in call order.
func concaveObjective(calls *[]float64) Objective {
	return func(x float64) (float64, error) {
		if calls != nil {
			*calls = append(*calls, x)
		}
		return -(x-30)*(x-30) + 1000, nil
	}
}

// monotonicObjective is strictly increasing on the whole domain, so it has
// no interior optimum for gradient ascent to find.
func monotonicObjective(calls *[]float64) Objective {
	return func(x float64) (float64, error) {
		if calls != nil {
			*calls = append(*calls, x)
		}
		return x, nil
	}
}

// allSearchers returns one instance of every strategy with workable
// parameters, for properties that must hold across the whole family.
func allSearchers() []Searcher {
	return []Searcher{
		BruteForce{StepDeg: 1},
		Ternary{ToleranceDeg: 1e-3},
		GoldenSection{ToleranceDeg: 1e-3},
		GradientAscent{InitialAngleDeg: 45, LearningRate: 0.1, GradientTolerance: 1e-3, MaxIterations: 1000},
	}
}
