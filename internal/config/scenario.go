package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/heliofit/heliofit/internal/solar"
)

// Scenario is the on-disk description of a single optimization run (YAML).
type Scenario struct {
	Panel  PanelScenario  `yaml:"panel"`
	Search SearchScenario `yaml:"search"`
}

type PanelScenario struct {
	LatitudeDeg float64 `yaml:"latitude_deg"`
	PanelAreaM2 float64 `yaml:"panel_area_m2"`
	Efficiency  float64 `yaml:"efficiency"`
}

type SearchScenario struct {
	// Mode is "annual" or "daily". Daily mode needs DayOfYear.
	Mode      string `yaml:"mode"`
	DayOfYear int    `yaml:"day_of_year"`

	MinAngleDeg float64 `yaml:"min_angle_deg"`
	MaxAngleDeg float64 `yaml:"max_angle_deg"`

	StepDeg           float64 `yaml:"step_deg"`
	ToleranceDeg      float64 `yaml:"tolerance_deg"`
	LearningRate      float64 `yaml:"learning_rate"`
	GradientTolerance float64 `yaml:"gradient_tolerance"`
	MaxIterations     int     `yaml:"max_iterations"`
}

// LoadScenario reads, defaults and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s invalid: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Search.Mode == "" {
		s.Search.Mode = "annual"
	}
	if s.Search.Mode == "daily" && s.Search.DayOfYear == 0 {
		s.Search.DayOfYear = 172 // summer solstice
	}
	if s.Search.MaxAngleDeg == 0 {
		s.Search.MaxAngleDeg = 90
	}
}

func (s *Scenario) Validate() error {
	switch s.Search.Mode {
	case "annual", "daily":
	default:
		return fmt.Errorf("search.mode must be annual or daily, got %q", s.Search.Mode)
	}
	if s.Search.Mode == "daily" && (s.Search.DayOfYear < 1 || s.Search.DayOfYear > 365) {
		return fmt.Errorf("search.day_of_year must be in [1, 365], got %d", s.Search.DayOfYear)
	}
	// Panel parameters are validated by constructing a model.
	if _, err := s.Model(); err != nil {
		return fmt.Errorf("panel config invalid: %w", err)
	}
	return nil
}

// Model constructs the solar model the scenario describes.
func (s *Scenario) Model() (*solar.Model, error) {
	return solar.NewModel(solar.PanelConfig{
		LatitudeDeg: s.Panel.LatitudeDeg,
		PanelAreaM2: s.Panel.PanelAreaM2,
		Efficiency:  s.Panel.Efficiency,
	})
}
