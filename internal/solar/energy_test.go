package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(PanelConfig{LatitudeDeg: 40.4, PanelAreaM2: 2.0, Efficiency: 0.22})
	require.NoError(t, err)
	return m
}

func TestNewModelValidation(t *testing.T) {
	tests := []struct {
		name      string
		cfg       PanelConfig
		wantField string
	}{
		{name: "latitude too high", cfg: PanelConfig{LatitudeDeg: 91, PanelAreaM2: 1, Efficiency: 0.2}, wantField: "latitude_deg"},
		{name: "latitude too low", cfg: PanelConfig{LatitudeDeg: -90.5, PanelAreaM2: 1, Efficiency: 0.2}, wantField: "latitude_deg"},
		{name: "zero area", cfg: PanelConfig{LatitudeDeg: 40, PanelAreaM2: 0, Efficiency: 0.2}, wantField: "panel_area_m2"},
		{name: "negative area", cfg: PanelConfig{LatitudeDeg: 40, PanelAreaM2: -1, Efficiency: 0.2}, wantField: "panel_area_m2"},
		{name: "zero efficiency", cfg: PanelConfig{LatitudeDeg: 40, PanelAreaM2: 1, Efficiency: 0}, wantField: "efficiency"},
		{name: "efficiency above one", cfg: PanelConfig{LatitudeDeg: 40, PanelAreaM2: 1, Efficiency: 1.2}, wantField: "efficiency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.cfg)
			var inputErr *InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.wantField, inputErr.Field)
		})
	}

	m, err := NewModel(PanelConfig{LatitudeDeg: -33.4, PanelAreaM2: 1.5, Efficiency: 1.0})
	require.NoError(t, err)
	assert.Equal(t, -33.4, m.Config().LatitudeDeg)
}

func TestInstantaneousPower(t *testing.T) {
	m := testModel(t)

	t.Run("zero at night", func(t *testing.T) {
		for _, hour := range []float64{0, 2, 23} {
			p, err := m.InstantaneousPower(30, 172, hour)
			require.NoError(t, err)
			assert.Equal(t, 0.0, p, "hour %v should be dark", hour)
		}
	})

	t.Run("positive at noon", func(t *testing.T) {
		p, err := m.InstantaneousPower(30, 172, 12)
		require.NoError(t, err)
		assert.Greater(t, p, 0.0)
	})

	t.Run("never negative", func(t *testing.T) {
		for day := 1; day <= 365; day += 30 {
			for hour := 0.0; hour <= 24; hour += 1.5 {
				for _, tilt := range []float64{0, 30, 60, 90} {
					p, err := m.InstantaneousPower(tilt, day, hour)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, p, 0.0, "day=%d hour=%v tilt=%v", day, hour, tilt)
				}
			}
		}
	})

	t.Run("invalid tilt", func(t *testing.T) {
		var inputErr *InvalidInputError
		_, err := m.InstantaneousPower(-1, 172, 12)
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, "tilt_deg", inputErr.Field)

		_, err = m.InstantaneousPower(90.5, 172, 12)
		require.ErrorAs(t, err, &inputErr)
	})

	t.Run("invalid day", func(t *testing.T) {
		var inputErr *InvalidInputError
		_, err := m.InstantaneousPower(30, 0, 12)
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, "day_of_year", inputErr.Field)
	})
}

func TestDirectNormalIrradiance(t *testing.T) {
	// Zenith sun: one air mass.
	assert.InDelta(t, SolarConstant*AtmosphericTransmissivity, DirectNormalIrradiance(90), 1e-9)

	// 30° elevation: two air masses.
	assert.InDelta(t, SolarConstant*0.49, DirectNormalIrradiance(30), 1e-6)

	// Below and at the horizon.
	assert.Equal(t, 0.0, DirectNormalIrradiance(0))
	assert.Equal(t, 0.0, DirectNormalIrradiance(-5))

	// Grazing elevations are capped, not divergent or vanishing.
	grazing := DirectNormalIrradiance(0.5)
	assert.Greater(t, grazing, 0.0)
	assert.InDelta(t, DirectNormalIrradiance(1), grazing, 1e-9, "capped air mass makes all grazing DNI equal")
}

func TestPlaneOfArrayIrradiance(t *testing.T) {
	assert.Equal(t, 0.0, PlaneOfArrayIrradiance(0, 45, 1), "all components zero when DNI is zero")

	dni := 800.0
	poa := PlaneOfArrayIrradiance(dni, 30, 1)
	direct := dni * 1.0
	diffuse := 0.1 * dni
	reflected := 0.2 * dni * 0.5 * 0.5 // sin(30°) = 0.5
	assert.InDelta(t, direct+diffuse+reflected, poa, 1e-9)

	// Sun behind the panel: diffuse and reflected light still arrive.
	behind := PlaneOfArrayIrradiance(dni, 30, 0)
	assert.InDelta(t, diffuse+reflected, behind, 1e-9)
}

func TestDailyEnergy(t *testing.T) {
	m := testModel(t)

	e, err := m.DailyEnergy(30, 172)
	require.NoError(t, err)
	assert.Greater(t, e, 0.0)

	// A summer day yields more than a winter day at the same tilt.
	winter, err := m.DailyEnergy(30, 355)
	require.NoError(t, err)
	assert.Greater(t, e, winter)

	var inputErr *InvalidInputError
	_, err = m.DailyEnergy(30, 366)
	require.ErrorAs(t, err, &inputErr)
	_, err = m.DailyEnergy(91, 172)
	require.ErrorAs(t, err, &inputErr)
}

func TestAnnualEnergyIsWeightedSumOfDailyEnergy(t *testing.T) {
	m := testModel(t)
	tilt := 35.0

	annual, err := m.AnnualEnergy(tilt)
	require.NoError(t, err)
	assert.Greater(t, annual, 0.0)

	// Definitional round trip: recompute the weighted monthly sum directly.
	wantWh := 0.0
	for i, day := range representativeDays {
		daily, err := m.DailyEnergy(tilt, day)
		require.NoError(t, err)
		wantWh += daily * daysInMonth[i]
	}
	assert.InDelta(t, wantWh/1000, annual, 1e-9)
}
