package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclination(t *testing.T) {
	tests := []struct {
		name      string
		dayOfYear int
		want      float64
		tol       float64
		wantErr   bool
	}{
		{name: "summer solstice", dayOfYear: 172, want: 23.45, tol: 0.05},
		{name: "winter solstice", dayOfYear: 355, want: -23.45, tol: 0.05},
		{name: "spring equinox", dayOfYear: 81, want: 0, tol: 0.5},
		{name: "day zero", dayOfYear: 0, wantErr: true},
		{name: "day 366", dayOfYear: 366, wantErr: true},
		{name: "negative day", dayOfYear: -10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Declination(tt.dayOfYear)
			if tt.wantErr {
				var inputErr *InvalidInputError
				require.ErrorAs(t, err, &inputErr)
				assert.Equal(t, "day_of_year", inputErr.Field)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.tol)
		})
	}
}

func TestHourAngle(t *testing.T) {
	assert.Equal(t, 0.0, HourAngle(12))
	assert.Equal(t, -90.0, HourAngle(6))
	assert.Equal(t, 90.0, HourAngle(18))
	assert.Equal(t, -7.5, HourAngle(11.5))
}

func TestElevation(t *testing.T) {
	tests := []struct {
		name        string
		declDeg     float64
		hourAngle   float64
		latDeg      float64
		wantElevDeg float64
		wantUp      bool
	}{
		{
			// At an equinox noon the sun stands at 90° minus the latitude.
			name: "equinox noon mid latitude", declDeg: 0, hourAngle: 0, latDeg: 40,
			wantElevDeg: 50, wantUp: true,
		},
		{
			name: "equinox noon equator", declDeg: 0, hourAngle: 0, latDeg: 0,
			wantElevDeg: 90, wantUp: true,
		},
		{
			name: "midnight is below horizon", declDeg: 0, hourAngle: 180, latDeg: 40,
			wantUp: false,
		},
		{
			name: "polar winter night", declDeg: -23.45, hourAngle: 0, latDeg: 80,
			wantUp: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elev, up := Elevation(tt.declDeg, tt.hourAngle, tt.latDeg)
			assert.Equal(t, tt.wantUp, up)
			if tt.wantUp {
				assert.InDelta(t, tt.wantElevDeg, elev, 1e-6)
			} else {
				// Never a negative elevation, a sentinel instead.
				assert.Equal(t, 0.0, elev)
			}
		})
	}
}

func TestAzimuth(t *testing.T) {
	// Noon on an equinox at a northern latitude: the sun is due south. The
	// cosine lands a few ulps shy of -1, so allow for that.
	az := Azimuth(0, 0, 40, 50)
	assert.InDelta(t, 180, az, 1e-5)

	// The degenerate states resolve to 0 by convention.
	assert.Equal(t, 0.0, Azimuth(0, 0, 40, 0), "sun on horizon")
	assert.Equal(t, 0.0, Azimuth(0, 0, 0, 90), "sun at zenith")

	// Afternoon azimuths mirror into (180, 360).
	morning := Azimuth(0, -45, 40, 30)
	afternoon := Azimuth(0, 45, 40, 30)
	assert.InDelta(t, 360, morning+afternoon, 1e-6, "morning and afternoon should be symmetric about south")
	assert.Less(t, morning, 180.0)
	assert.Greater(t, afternoon, 180.0)
}

func TestIncidenceCosine(t *testing.T) {
	// Sun due south at 50° elevation, panel tilted 40°: the beam is normal
	// to the panel face.
	assert.InDelta(t, 1.0, IncidenceCosine(50, 180, 40), 1e-9)

	// Flat panel: incidence cosine equals sin(elevation).
	assert.InDelta(t, 0.5, IncidenceCosine(30, 180, 0), 1e-9)

	// Sun behind a vertical panel clamps to zero, never negative.
	assert.Equal(t, 0.0, IncidenceCosine(10, 0, 90))
}

func TestSolarGeometryClassification(t *testing.T) {
	m, err := NewModel(PanelConfig{LatitudeDeg: 40.4, PanelAreaM2: 1, Efficiency: 0.2})
	require.NoError(t, err)

	tests := []struct {
		name string
		day  int
		hour float64
		want SkyState
	}{
		{name: "midnight", day: 172, hour: 0, want: Night},
		{name: "noon in summer", day: 172, hour: 12, want: Day},
		{name: "noon in winter is still day", day: 355, hour: 12, want: Day},
		{name: "early morning in winter grazes", day: 355, hour: 7.5, want: Grazing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := m.SolarGeometry(tt.day, tt.hour)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.State, "got state %s", g.State)
		})
	}
}

func TestSolarGeometryNightHasZeroAzimuth(t *testing.T) {
	m, err := NewModel(PanelConfig{LatitudeDeg: 40.4, PanelAreaM2: 1, Efficiency: 0.2})
	require.NoError(t, err)

	g, err := m.SolarGeometry(172, 0)
	require.NoError(t, err)
	assert.Equal(t, Night, g.State)
	assert.Equal(t, 0.0, g.ElevationDeg)
	assert.Equal(t, 0.0, g.AzimuthDeg)
}
