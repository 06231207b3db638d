package optimization

import "github.com/heliofit/heliofit/internal/solar"

// DailyObjective binds a solar model to the energy captured on a single day
// of the year, in Wh.
func DailyObjective(m *solar.Model, dayOfYear int) Objective {
	return func(angleDeg float64) (float64, error) {
		return m.DailyEnergy(angleDeg, dayOfYear)
	}
}

// AnnualObjective binds a solar model to the energy captured over a year,
// in kWh.
func AnnualObjective(m *solar.Model) Objective {
	return func(angleDeg float64) (float64, error) {
		return m.AnnualEnergy(angleDeg)
	}
}
