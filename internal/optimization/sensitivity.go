package optimization

import (
	"gonum.org/v1/gonum/floats"

	"github.com/heliofit/heliofit/internal/solar"
)

// SensitivityAnalysis evaluates the objective at samples points spanning
// optimum ± window, symmetrically, so callers can see how fast energy
// degrades away from a found optimum. Sample angles outside the [0, 90] tilt
// domain are dropped. Records are returned in sampling order; percentage
// loss is derived via LossPercent, never stored.
func SensitivityAnalysis(f Objective, optimumDeg, windowDeg float64, samples int) ([]EvaluationRecord, error) {
	if optimumDeg < DomainMinDeg || optimumDeg > DomainMaxDeg {
		return nil, solar.NewInvalidInput("optimum_deg", optimumDeg, "must be in [0, 90]")
	}
	if windowDeg <= 0 {
		return nil, solar.NewInvalidInput("window_deg", windowDeg, "must be > 0")
	}
	if samples < 3 {
		return nil, solar.NewInvalidInput("samples", float64(samples), "need at least 3 samples")
	}

	grid := floats.Span(make([]float64, samples), optimumDeg-windowDeg, optimumDeg+windowDeg)
	records := make([]EvaluationRecord, 0, samples)
	for _, angle := range grid {
		if angle < DomainMinDeg || angle > DomainMaxDeg {
			continue
		}
		v, err := f(angle)
		if err != nil {
			return nil, err
		}
		records = append(records, EvaluationRecord{AngleDeg: angle, Energy: v})
	}
	return records, nil
}

// LossPercent returns, per record, the percentage energy loss relative to
// the optimum value.
func LossPercent(records []EvaluationRecord, optimalEnergy float64) []float64 {
	out := make([]float64, len(records))
	if optimalEnergy == 0 {
		return out
	}
	for i, r := range records {
		out[i] = (optimalEnergy - r.Energy) / optimalEnergy * 100
	}
	return out
}
