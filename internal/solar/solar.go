// Package solar models the electrical energy a fixed-tilt, south-facing
// panel captures as a function of geographic latitude, calendar day and tilt
// angle. Every operation is a pure function of its arguments plus the
// immutable panel configuration, so a Model is safe for concurrent use.
//
// All angles cross the package boundary in degrees.
package solar

import "math"

// Physical constants of the irradiance model.
const (
	// SolarConstant is the extraterrestrial irradiance in W/m².
	SolarConstant = 1367.0

	// AtmosphericTransmissivity is the fixed clear-sky attenuation factor
	// applied once per unit of air mass.
	AtmosphericTransmissivity = 0.7

	// maxAirMass caps the 1/sin(elevation) air-mass term, which otherwise
	// diverges as the sun approaches the horizon.
	maxAirMass = 10.0

	// diffuseFraction approximates sky-diffuse irradiance as a fraction of DNI.
	diffuseFraction = 0.1

	// groundAlbedo is the reflectance used for the ground-reflected component.
	groundAlbedo = 0.2

	// panelAzimuthDeg fixes the panel orientation: due south.
	panelAzimuthDeg = 180.0
)

// Daily integration window. DailyEnergy integrates instantaneous power with
// the trapezoid rule over [IntegrationStartHour, IntegrationEndHour] sampled
// every IntegrationStepHours. The step is a fixed configuration constant, not
// derived: it trades energy accuracy directly against evaluation cost.
const (
	IntegrationStartHour = 6.0
	IntegrationEndHour   = 18.0
	IntegrationStepHours = 0.5
)

// Representative day-of-year per month and the weight (days) applied to each
// when summing annual energy.
var (
	representativeDays = [12]int{17, 47, 75, 105, 135, 162, 198, 230, 266, 296, 326, 356}
	daysInMonth        = [12]float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// PanelConfig holds the immutable parameters of one panel installation.
type PanelConfig struct {
	// LatitudeDeg is the geographic latitude, [-90, 90].
	LatitudeDeg float64
	// PanelAreaM2 is the panel surface in square meters, > 0.
	PanelAreaM2 float64
	// Efficiency is the electrical conversion fraction, (0, 1].
	Efficiency float64
}

// Model computes captured solar energy for a fixed panel configuration.
type Model struct {
	cfg PanelConfig
}

// NewModel validates the configuration and returns a ready model.
func NewModel(cfg PanelConfig) (*Model, error) {
	if cfg.LatitudeDeg < -90 || cfg.LatitudeDeg > 90 || math.IsNaN(cfg.LatitudeDeg) {
		return nil, NewInvalidInput("latitude_deg", cfg.LatitudeDeg, "must be in [-90, 90]")
	}
	if cfg.PanelAreaM2 <= 0 || math.IsNaN(cfg.PanelAreaM2) || math.IsInf(cfg.PanelAreaM2, 0) {
		return nil, NewInvalidInput("panel_area_m2", cfg.PanelAreaM2, "must be > 0")
	}
	if cfg.Efficiency <= 0 || cfg.Efficiency > 1 || math.IsNaN(cfg.Efficiency) {
		return nil, NewInvalidInput("efficiency", cfg.Efficiency, "must be in (0, 1]")
	}
	return &Model{cfg: cfg}, nil
}

// Config returns the panel configuration the model was built with.
func (m *Model) Config() PanelConfig {
	return m.cfg
}

func validTilt(tiltDeg float64) error {
	if tiltDeg < 0 || tiltDeg > 90 || math.IsNaN(tiltDeg) {
		return NewInvalidInput("tilt_deg", tiltDeg, "must be in [0, 90]")
	}
	return nil
}
