package solar

import "math"

// SkyState classifies solar geometry before any irradiance is computed.
// Classifying first keeps the divergent air-mass term and the degenerate
// azimuth equation out of the hot path entirely.
type SkyState int

const (
	// Night means the sun is at or below the horizon. Power is exactly
	// zero; no trigonometric extrapolation is performed.
	Night SkyState = iota
	// Grazing means the sun is up but low enough that the uncapped air
	// mass 1/sin(elevation) would exceed maxAirMass; irradiance is
	// computed with the capped value.
	Grazing
	// Day is ordinary daylight geometry.
	Day
)

// String returns the lowercase name of the state.
func (s SkyState) String() string {
	switch s {
	case Night:
		return "night"
	case Grazing:
		return "grazing"
	case Day:
		return "day"
	}
	return "unknown"
}

// grazingElevationDeg is the elevation below which the uncapped air mass
// exceeds maxAirMass: asin(1/maxAirMass), about 5.74°.
var grazingElevationDeg = degrees(math.Asin(1 / maxAirMass))

// Geometry holds the transient angles of a single evaluation instant.
// Nothing persists these; they exist only within one energy computation.
type Geometry struct {
	DeclinationDeg float64
	HourAngleDeg   float64
	ElevationDeg   float64
	AzimuthDeg     float64
	State          SkyState
}

// Declination returns the solar declination δ = 23.45·sin(360·(284+n)/365)
// for a day of year n in [1, 365].
func Declination(dayOfYear int) (float64, error) {
	if dayOfYear < 1 || dayOfYear > 365 {
		return 0, NewInvalidInput("day_of_year", float64(dayOfYear), "must be in [1, 365]")
	}
	return 23.45 * math.Sin(radians(360.0*(284.0+float64(dayOfYear))/365.0)), nil
}

// HourAngle returns ω = 15·(hour − 12) for an hour of day, nominally [0, 24].
func HourAngle(hour float64) float64 {
	return 15 * (hour - 12)
}

// Elevation returns the solar elevation angle above the horizon. When the
// sun is at or below the horizon it reports up=false with a zero elevation
// rather than a negative angle, so callers cannot feed a below-horizon value
// into the irradiance formulas.
func Elevation(declinationDeg, hourAngleDeg, latitudeDeg float64) (elevDeg float64, up bool) {
	sinElev := math.Sin(radians(latitudeDeg))*math.Sin(radians(declinationDeg)) +
		math.Cos(radians(latitudeDeg))*math.Cos(radians(declinationDeg))*math.Cos(radians(hourAngleDeg))
	if sinElev <= 0 {
		return 0, false
	}
	return degrees(math.Asin(math.Min(sinElev, 1))), true
}

// Azimuth returns the solar azimuth measured clockwise from north, in
// [0, 360). By convention it is 0 when the sun is at or below the horizon or
// directly overhead, where the defining equation is degenerate (cos α = 0);
// those states never reach the irradiance formulas, see SkyState.
func Azimuth(declinationDeg, hourAngleDeg, latitudeDeg, elevationDeg float64) float64 {
	if elevationDeg <= 0 || elevationDeg >= 90 {
		return 0
	}
	cosAz := (math.Sin(radians(declinationDeg))*math.Cos(radians(latitudeDeg)) -
		math.Cos(radians(declinationDeg))*math.Sin(radians(latitudeDeg))*math.Cos(radians(hourAngleDeg))) /
		math.Cos(radians(elevationDeg))
	cosAz = clamp(cosAz, -1, 1)
	az := degrees(math.Acos(cosAz))
	// Mirror into the afternoon half-plane once the sun has passed solar noon.
	if hourAngleDeg > 0 {
		az = 360 - az
	}
	return az
}

// IncidenceCosine returns cos θ between the sun vector and the normal of a
// south-facing panel tilted by tiltDeg. The result is clamped to [0, 1]: a
// panel receives no negative direct flux when the sun is behind it.
func IncidenceCosine(elevationDeg, azimuthDeg, tiltDeg float64) float64 {
	cosInc := math.Sin(radians(elevationDeg))*math.Cos(radians(tiltDeg)) +
		math.Cos(radians(elevationDeg))*math.Sin(radians(tiltDeg))*
			math.Cos(radians(azimuthDeg-panelAzimuthDeg))
	return clamp(cosInc, 0, 1)
}

// SolarGeometry computes and classifies the full geometry for one instant.
func (m *Model) SolarGeometry(dayOfYear int, hour float64) (Geometry, error) {
	decl, err := Declination(dayOfYear)
	if err != nil {
		return Geometry{}, err
	}
	ha := HourAngle(hour)
	elev, up := Elevation(decl, ha, m.cfg.LatitudeDeg)

	g := Geometry{
		DeclinationDeg: decl,
		HourAngleDeg:   ha,
		ElevationDeg:   elev,
	}
	switch {
	case !up:
		g.State = Night
	case elev < grazingElevationDeg:
		g.State = Grazing
	default:
		g.State = Day
	}
	if g.State != Night {
		g.AzimuthDeg = Azimuth(decl, ha, m.cfg.LatitudeDeg, elev)
	}
	return g, nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
