package solar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// InstantaneousPower returns the electrical power in watts produced at the
// given tilt, day of year and hour of day. Power is exactly 0 whenever the
// computed solar elevation is at or below the horizon.
func (m *Model) InstantaneousPower(tiltDeg float64, dayOfYear int, hour float64) (float64, error) {
	if err := validTilt(tiltDeg); err != nil {
		return 0, err
	}
	g, err := m.SolarGeometry(dayOfYear, hour)
	if err != nil {
		return 0, err
	}
	if g.State == Night {
		return 0, nil
	}

	dni := DirectNormalIrradiance(g.ElevationDeg)
	cosInc := IncidenceCosine(g.ElevationDeg, g.AzimuthDeg, tiltDeg)
	poa := PlaneOfArrayIrradiance(dni, g.ElevationDeg, cosInc)

	p := poa * m.cfg.PanelAreaM2 * m.cfg.Efficiency
	if math.IsNaN(p) || math.IsInf(p, 0) {
		// Contract violation, not a physical state: surface it.
		return 0, fmt.Errorf("non-finite power at tilt=%v day=%d hour=%v", tiltDeg, dayOfYear, hour)
	}
	return p, nil
}

// DailyEnergy integrates instantaneous power over the daylight window and
// returns watt-hours. The quadrature is the trapezoid rule over uniform
// half-hour samples between 06:00 and 18:00 (see the Integration constants).
func (m *Model) DailyEnergy(tiltDeg float64, dayOfYear int) (float64, error) {
	if err := validTilt(tiltDeg); err != nil {
		return 0, err
	}
	if _, err := Declination(dayOfYear); err != nil {
		return 0, err
	}

	n := int((IntegrationEndHour-IntegrationStartHour)/IntegrationStepHours) + 1
	hours := floats.Span(make([]float64, n), IntegrationStartHour, IntegrationEndHour)
	powers := make([]float64, n)
	for i, h := range hours {
		p, err := m.InstantaneousPower(tiltDeg, dayOfYear, h)
		if err != nil {
			return 0, err
		}
		powers[i] = p
	}
	return integrate.Trapezoidal(hours, powers), nil
}

// AnnualEnergy returns the energy captured over a year in kilowatt-hours,
// summed over twelve representative days (one per month) weighted by the
// number of days in each month.
func (m *Model) AnnualEnergy(tiltDeg float64) (float64, error) {
	totalWh := 0.0
	for i, day := range representativeDays {
		wh, err := m.DailyEnergy(tiltDeg, day)
		if err != nil {
			return 0, err
		}
		totalWh += wh * daysInMonth[i]
	}
	return totalWh / 1000, nil
}
