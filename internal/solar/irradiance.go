package solar

import "math"

// DirectNormalIrradiance returns the beam irradiance on a surface normal to
// the sun, in W/m²: DNI = I₀·τ^m with air mass m = 1/sin(elevation). The air
// mass is capped at maxAirMass so grazing elevations stay finite, and the
// result is 0 at or below the horizon.
func DirectNormalIrradiance(elevationDeg float64) float64 {
	if elevationDeg <= 0 {
		return 0
	}
	airMass := 1 / math.Sin(radians(elevationDeg))
	if airMass > maxAirMass {
		airMass = maxAirMass
	}
	return SolarConstant * math.Pow(AtmosphericTransmissivity, airMass)
}

// PlaneOfArrayIrradiance combines the direct, sky-diffuse and
// ground-reflected components on the tilted panel, in W/m². The incidence
// cosine must already be clamped to [0, 1]; all three components are 0 when
// DNI is 0.
func PlaneOfArrayIrradiance(dni, elevationDeg, incidenceCos float64) float64 {
	if dni <= 0 {
		return 0
	}
	direct := dni * incidenceCos
	diffuse := diffuseFraction * dni
	reflected := groundAlbedo * dni * math.Sin(radians(elevationDeg)) * 0.5
	total := direct + diffuse + reflected
	if total < 0 {
		return 0
	}
	return total
}
