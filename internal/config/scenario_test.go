package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenarioDefaults(t *testing.T) {
	path := writeScenario(t, `
panel:
  latitude_deg: 40.4
  panel_area_m2: 2.0
  efficiency: 0.22
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "annual", s.Search.Mode)
	assert.Equal(t, 0.0, s.Search.MinAngleDeg)
	assert.Equal(t, 90.0, s.Search.MaxAngleDeg)

	m, err := s.Model()
	require.NoError(t, err)
	assert.Equal(t, 40.4, m.Config().LatitudeDeg)
}

func TestLoadScenarioDailyDefaultsToSolstice(t *testing.T) {
	path := writeScenario(t, `
panel:
  latitude_deg: 0
  panel_area_m2: 1.0
  efficiency: 0.2
search:
  mode: daily
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 172, s.Search.DayOfYear)
}

func TestLoadScenarioRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "unknown mode",
			body: `
panel: {latitude_deg: 40, panel_area_m2: 2, efficiency: 0.2}
search: {mode: monthly}
`,
		},
		{
			name: "day out of range",
			body: `
panel: {latitude_deg: 40, panel_area_m2: 2, efficiency: 0.2}
search: {mode: daily, day_of_year: 400}
`,
		},
		{
			name: "invalid panel",
			body: `
panel: {latitude_deg: 120, panel_area_m2: 2, efficiency: 0.2}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
