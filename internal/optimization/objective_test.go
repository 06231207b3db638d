package optimization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliofit/heliofit/internal/solar"
)

func newModel(t *testing.T, latitudeDeg float64) *solar.Model {
	t.Helper()
	m, err := solar.NewModel(solar.PanelConfig{LatitudeDeg: latitudeDeg, PanelAreaM2: 2.0, Efficiency: 0.22})
	require.NoError(t, err)
	return m
}

func TestAnnualOptimumMidLatitude(t *testing.T) {
	// Madrid. The year-round optimum tilt for a south-facing panel sits a few
	// degrees below the latitude; with this model's clear-sky irradiance the
	// optimum comes out near 34°.
	m := newModel(t, 40.4)

	res, err := Ternary{ToleranceDeg: 0.1}.Search(AnnualObjective(m), Bounds{MinDeg: DomainMinDeg, MaxDeg: DomainMaxDeg})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.OptimalAngleDeg, 32.0)
	assert.LessOrEqual(t, res.OptimalAngleDeg, 38.0)
	assert.Greater(t, res.OptimalEnergy, 0.0)
}

func TestAnnualOptimumEquator(t *testing.T) {
	m := newModel(t, 0)

	res, err := GoldenSection{ToleranceDeg: 0.1}.Search(AnnualObjective(m), Bounds{MinDeg: DomainMinDeg, MaxDeg: DomainMaxDeg})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.OptimalAngleDeg, 0.0)
	assert.LessOrEqual(t, res.OptimalAngleDeg, 15.0)
}

func TestDailyOptimumTracksSeason(t *testing.T) {
	m := newModel(t, 40.4)
	bounds := Bounds{MinDeg: DomainMinDeg, MaxDeg: DomainMaxDeg}

	summer, err := GoldenSection{ToleranceDeg: 0.1}.Search(DailyObjective(m, 172), bounds)
	require.NoError(t, err)
	winter, err := GoldenSection{ToleranceDeg: 0.1}.Search(DailyObjective(m, 355), bounds)
	require.NoError(t, err)

	// The sun rides low in winter, so the winter tilt is much steeper.
	assert.Greater(t, winter.OptimalAngleDeg, summer.OptimalAngleDeg+20)
	assert.Greater(t, summer.OptimalEnergy, winter.OptimalEnergy)
}

func TestCompareMethodsAgreeOnAnnualObjective(t *testing.T) {
	if testing.Short() {
		t.Skip("full annual comparison is slow")
	}
	m := newModel(t, 40.4)

	cmp, err := CompareMethods(AnnualObjective(m), Bounds{MinDeg: DomainMinDeg, MaxDeg: DomainMaxDeg}, CompareOptions{})
	require.NoError(t, err)

	truth := cmp.Results["brute_force"].OptimalAngleDeg
	for name, res := range cmp.Results {
		assert.InDelta(t, truth, res.OptimalAngleDeg, 2.0, "%s disagrees with brute force", name)
	}
}

func TestDailyObjectivePropagatesModelErrors(t *testing.T) {
	m := newModel(t, 40.4)
	f := DailyObjective(m, 999)

	_, err := f(30)
	var inputErr *solar.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "day_of_year", inputErr.Field)
}
